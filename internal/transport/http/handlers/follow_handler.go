package handlers

import (
	"fmt"
	"net/http"

	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/transport/http/middleware"
)

type FollowHandler struct {
	followService *service.FollowService
	perPage       int
}

func NewFollowHandler(followService *service.FollowService, perPage int) *FollowHandler {
	return &FollowHandler{followService: followService, perPage: perPage}
}

func (h *FollowHandler) Follow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	actor := middleware.GetUser(r.Context())
	if err := h.followService.Follow(r.Context(), actor, id); err != nil {
		writeServiceError(w, "follow", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "following"})
}

func (h *FollowHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	actor := middleware.GetUser(r.Context())
	if err := h.followService.Unfollow(r.Context(), actor, id); err != nil {
		writeServiceError(w, "unfollow", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "not following"})
}

func (h *FollowHandler) Followers(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p := parsePage(r, h.perPage)
	follows, total, err := h.followService.Followers(r.Context(), id, p.PerPage, p.Offset())
	if err != nil {
		writeServiceError(w, "list followers", err)
		return
	}

	writePage(w, "followers", follows, p, total, fmt.Sprintf("/api/v1/users/%s/followers", id))
}

func (h *FollowHandler) Following(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	p := parsePage(r, h.perPage)
	follows, total, err := h.followService.Following(r.Context(), id, p.PerPage, p.Offset())
	if err != nil {
		writeServiceError(w, "list following", err)
		return
	}

	writePage(w, "following", follows, p, total, fmt.Sprintf("/api/v1/users/%s/following", id))
}
