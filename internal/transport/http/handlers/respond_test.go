package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scribeapp/scribe/internal/domain"
	"github.com/scribeapp/scribe/internal/service"
	"github.com/scribeapp/scribe/internal/token"
	"github.com/scribeapp/scribe/pkg/validator"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestParsePage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query    string
		wantPage int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=junk", 1},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/api/v1/posts"+tc.query, nil)
		p := parsePage(r, 20)
		require.Equal(t, tc.wantPage, p.Page, "query %q", tc.query)
		require.Equal(t, (tc.wantPage-1)*20, p.Offset())
	}
}

func TestWritePage_Envelope(t *testing.T) {
	t.Parallel()

	// Middle page: both neighbors present.
	rec := httptest.NewRecorder()
	writePage(rec, "posts", []string{"a", "b"}, pagination{Page: 2, PerPage: 2}, 6, "/api/v1/posts")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	require.Len(t, body["posts"], 2)
	require.Equal(t, float64(6), body["count"])
	require.Equal(t, "/api/v1/posts?page=1", body["prev_url"])
	require.Equal(t, "/api/v1/posts?page=3", body["next_url"])
}

func TestWritePage_Edges(t *testing.T) {
	t.Parallel()

	// First page has no prev.
	rec := httptest.NewRecorder()
	writePage(rec, "posts", []string{"a"}, pagination{Page: 1, PerPage: 2}, 3, "/api/v1/posts")
	body := decodeBody(t, rec)
	require.Nil(t, body["prev_url"])
	require.Equal(t, "/api/v1/posts?page=2", body["next_url"])

	// Last page has no next.
	rec = httptest.NewRecorder()
	writePage(rec, "posts", []string{"c"}, pagination{Page: 2, PerPage: 2}, 3, "/api/v1/posts")
	body = decodeBody(t, rec)
	require.Equal(t, "/api/v1/posts?page=1", body["prev_url"])
	require.Nil(t, body["next_url"])

	// Empty listing: nothing on either side.
	rec = httptest.NewRecorder()
	writePage(rec, "posts", []string{}, pagination{Page: 1, PerPage: 2}, 0, "/api/v1/posts")
	body = decodeBody(t, rec)
	require.Nil(t, body["prev_url"])
	require.Nil(t, body["next_url"])
	require.Equal(t, float64(0), body["count"])
}

func TestWriteServiceError_Mapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrPermissionDenied, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{domain.ErrSelfUnfollow, http.StatusBadRequest, "SELF_UNFOLLOW"},
		{token.ErrInvalid, http.StatusUnauthorized, "INVALID_TOKEN"},
		{service.ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{service.ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{service.ErrInvalidCreds, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{&domain.ValidationError{Field: "body", Msg: "is required"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeServiceError(rec, "test op", tc.err)

		require.Equal(t, tc.wantStatus, rec.Code, "error %v", tc.err)

		body := decodeBody(t, rec)
		errObj, ok := body["error"].(map[string]any)
		require.True(t, ok, "error envelope missing for %v", tc.err)
		require.Equal(t, tc.wantCode, errObj["code"])
	}
}

func TestWriteValidationErrors(t *testing.T) {
	t.Parallel()

	errs := validator.ValidationErrors{"email": "Email is required"}
	rec := httptest.NewRecorder()
	writeValidationErrors(rec, errs)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	require.Equal(t, "VALIDATION_ERROR", errObj["code"])
	fields := errObj["fields"].(map[string]any)
	require.Equal(t, "Email is required", fields["email"])
}
