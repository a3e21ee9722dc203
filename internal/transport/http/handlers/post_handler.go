package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/transport/http/middleware"
)

type PostHandler struct {
	postService    *service.PostService
	commentService *service.CommentService
	perPage        int
}

func NewPostHandler(postService *service.PostService, commentService *service.CommentService, perPage int) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
		perPage:        perPage,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	actor := middleware.GetUser(r.Context())
	post, err := h.postService.Create(r.Context(), actor, input)
	if err != nil {
		writeServiceError(w, "create post", err)
		return
	}

	w.Header().Set("Location", post.ToAPI().URL)
	writeJSON(w, http.StatusCreated, post.ToAPI())
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get post", err)
		return
	}

	writeJSON(w, http.StatusOK, post.ToAPI())
}

func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var input domain.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	actor := middleware.GetUser(r.Context())
	post, err := h.postService.Edit(r.Context(), actor, id, input)
	if err != nil {
		writeServiceError(w, "edit post", err)
		return
	}

	writeJSON(w, http.StatusOK, post.ToAPI())
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r, h.perPage)
	posts, total, err := h.postService.List(r.Context(), p.PerPage, p.Offset())
	if err != nil {
		writeServiceError(w, "list posts", err)
		return
	}

	writePage(w, "posts", toAPIPosts(posts), p, total, "/api/v1/posts")
}

func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var input domain.ContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	actor := middleware.GetUser(r.Context())
	comment, err := h.commentService.Create(r.Context(), actor, id, input)
	if err != nil {
		writeServiceError(w, "create comment", err)
		return
	}

	w.Header().Set("Location", comment.ToAPI().URL)
	writeJSON(w, http.StatusCreated, comment.ToAPI())
}

func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p := parsePage(r, h.perPage)
	comments, total, err := h.commentService.ListByPost(r.Context(), id, p.PerPage, p.Offset())
	if err != nil {
		writeServiceError(w, "list post comments", err)
		return
	}

	writePage(w, "comments", toAPIComments(comments), p, total, fmt.Sprintf("/api/v1/posts/%s/comments", id))
}

func toAPIComments(comments []domain.Comment) []domain.APIComment {
	out := make([]domain.APIComment, 0, len(comments))
	for i := range comments {
		out = append(out, comments[i].ToAPI())
	}
	return out
}
