package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/transport/http/middleware"
	"github.com/scribeapp/scribe/pkg/validator"
)

type UserHandler struct {
	authService   *service.AuthService
	postService   *service.PostService
	followService *service.FollowService
	perPage       int
}

func NewUserHandler(authService *service.AuthService, postService *service.PostService, followService *service.FollowService, perPage int) *UserHandler {
	return &UserHandler{
		authService:   authService,
		postService:   postService,
		followService: followService,
		perPage:       perPage,
	}
}

// Get serves the public view of a user.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.authService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}

	postCount, err := h.postService.CountByAuthor(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}

	writeJSON(w, http.StatusOK, user.ToAPI(postCount))
}

// Me serves the authenticated user's own record, private fields
// included.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Location string `json:"location"`
		About    string `json:"about"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateProfile(input.Name, input.Location, input.About); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	user := middleware.GetUser(r.Context())
	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, input.Name, input.Location, input.About)
	if err != nil {
		writeServiceError(w, "update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Posts lists a user's own posts, newest first.
func (h *UserHandler) Posts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p := parsePage(r, h.perPage)
	posts, total, err := h.postService.ListByAuthor(r.Context(), id, p.PerPage, p.Offset())
	if err != nil {
		writeServiceError(w, "list user posts", err)
		return
	}

	writePage(w, "posts", toAPIPosts(posts), p, total, fmt.Sprintf("/api/v1/users/%s/posts", id))
}

// Timeline lists posts by everyone the user follows, themselves
// included.
func (h *UserHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p := parsePage(r, h.perPage)
	posts, total, err := h.followService.FollowedPosts(r.Context(), id, p.PerPage, p.Offset())
	if err != nil {
		writeServiceError(w, "list timeline", err)
		return
	}

	writePage(w, "posts", toAPIPosts(posts), p, total, fmt.Sprintf("/api/v1/users/%s/timeline", id))
}

func toAPIPosts(posts []domain.Post) []domain.APIPost {
	out := make([]domain.APIPost, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].ToAPI())
	}
	return out
}

func parseID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
