package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/notify"
)

// In-memory repository fakes. They enforce the same uniqueness
// constraints the real schema does, reporting domain.ErrConflict, so
// services see identical semantics.

type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*domain.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return domain.ErrConflict
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) || u.Username == user.Username {
			return domain.ErrConflict
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	return nil
}

type memRoleRepo struct {
	roles map[string]*domain.Role
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: map[string]*domain.Role{}}
}

func (r *memRoleRepo) Upsert(ctx context.Context, role *domain.Role) error {
	cp := *role
	r.roles[role.Name] = &cp
	return nil
}

func (r *memRoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, nil
	}
	cp := *role
	return &cp, nil
}

func (r *memRoleRepo) GetDefault(ctx context.Context) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Default {
			cp := *role
			return &cp, nil
		}
	}
	return nil, nil
}

type edge struct {
	follower, followed uuid.UUID
}

type memFollowRepo struct {
	edges map[edge]domain.Follow
	users *memUserRepo
}

func newMemFollowRepo(users *memUserRepo) *memFollowRepo {
	return &memFollowRepo{edges: map[edge]domain.Follow{}, users: users}
}

func (r *memFollowRepo) Create(ctx context.Context, f *domain.Follow) error {
	key := edge{f.FollowerID, f.FollowedID}
	if _, exists := r.edges[key]; exists {
		return domain.ErrConflict
	}
	r.edges[key] = *f
	return nil
}

func (r *memFollowRepo) Delete(ctx context.Context, followerID, followedID uuid.UUID) error {
	if followerID == followedID {
		return nil
	}
	delete(r.edges, edge{followerID, followedID})
	return nil
}

func (r *memFollowRepo) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	_, ok := r.edges[edge{followerID, followedID}]
	return ok, nil
}

func (r *memFollowRepo) ListFollowers(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, error) {
	var out []domain.Follow
	for _, f := range r.edges {
		if f.FollowedID == userID {
			out = append(out, f)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memFollowRepo) ListFollowing(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Follow, error) {
	var out []domain.Follow
	for _, f := range r.edges {
		if f.FollowerID == userID {
			out = append(out, f)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memFollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, f := range r.edges {
		if f.FollowedID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memFollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	n := 0
	for _, f := range r.edges {
		if f.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

func (r *memFollowRepo) ListMissingSelfFollows(ctx context.Context, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id := range r.users.users {
		if _, ok := r.edges[edge{id, id}]; !ok {
			ids = append(ids, id)
			if len(ids) == limit {
				break
			}
		}
	}
	return ids, nil
}

type memPostRepo struct {
	posts   []domain.Post
	follows *memFollowRepo
}

func newMemPostRepo(follows *memFollowRepo) *memPostRepo {
	return &memPostRepo{follows: follows}
}

func (r *memPostRepo) Create(ctx context.Context, post *domain.Post) error {
	r.posts = append(r.posts, *post)
	return nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	for i := range r.posts {
		if r.posts[i].ID == id {
			cp := r.posts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPostRepo) Update(ctx context.Context, post *domain.Post) error {
	for i := range r.posts {
		if r.posts[i].ID == post.ID {
			r.posts[i] = *post
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memPostRepo) List(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	return paginate(sortedDesc(r.posts), limit, offset), nil
}

func (r *memPostRepo) Count(ctx context.Context) (int, error) {
	return len(r.posts), nil
}

func (r *memPostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range sortedDesc(r.posts) {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memPostRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	n := 0
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *memPostRepo) ListFollowed(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range sortedDesc(r.posts) {
		if _, ok := r.follows.edges[edge{userID, p.AuthorID}]; ok {
			out = append(out, p)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *memPostRepo) CountFollowed(ctx context.Context, userID uuid.UUID) (int, error) {
	posts, err := r.ListFollowed(ctx, userID, len(r.posts)+1, 0)
	return len(posts), err
}

type memCommentRepo struct {
	comments []domain.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{}
}

func (r *memCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *memCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	for i := range r.comments {
		if r.comments[i].ID == id {
			cp := r.comments[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCommentRepo) SetDisabled(ctx context.Context, id uuid.UUID, disabled bool) error {
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].Disabled = disabled
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memCommentRepo) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *memCommentRepo) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	n := 0
	for _, c := range r.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r *memCommentRepo) List(ctx context.Context, limit, offset int) ([]domain.Comment, error) {
	out := append([]domain.Comment(nil), r.comments...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *memCommentRepo) Count(ctx context.Context) (int, error) {
	return len(r.comments), nil
}

// recPublisher records notification events for assertions.
type recPublisher struct {
	events []notify.Event
}

func (p *recPublisher) Publish(ctx context.Context, event notify.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recPublisher) last() *notify.Event {
	if len(p.events) == 0 {
		return nil
	}
	return &p.events[len(p.events)-1]
}

func sortedDesc(posts []domain.Post) []domain.Post {
	out := append([]domain.Post(nil), posts...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
