package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/transport/http/middleware"
)

type CommentHandler struct {
	commentService *service.CommentService
	perPage        int
}

func NewCommentHandler(commentService *service.CommentService, perPage int) *CommentHandler {
	return &CommentHandler{commentService: commentService, perPage: perPage}
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get comment", err)
		return
	}

	writeJSON(w, http.StatusOK, comment.ToAPI())
}

// List is the moderation queue: every comment, newest first, disabled
// ones included.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	p := parsePage(r, h.perPage)
	actor := middleware.GetUser(r.Context())
	comments, total, err := h.commentService.ListAll(r.Context(), actor, p.PerPage, p.Offset())
	if err != nil {
		writeServiceError(w, "list comments", err)
		return
	}

	writePage(w, "comments", comments, p, total, "/api/v1/comments")
}

// Moderate enables or disables a comment.
func (h *CommentHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var input struct {
		Disabled bool `json:"disabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	actor := middleware.GetUser(r.Context())
	if err := h.commentService.SetDisabled(r.Context(), actor, id, input.Disabled); err != nil {
		writeServiceError(w, "moderate comment", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"disabled": input.Disabled})
}
