package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"classroom/internal/apperr"
	"classroom/internal/httpx"
	"classroom/internal/session"
)

// caller returns the identity RequireAPI put on the request context.
func caller(r *http.Request) (session.Identity, error) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		return session.Identity{}, apperr.Unauthorized("login required")
	}
	return id, nil
}

// pathID parses a UUID route parameter. Anything unparseable cannot name a
// row, so it is reported as not found.
func pathID(r *http.Request, param, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, apperr.NotFound(what + " not found")
	}
	return id, nil
}

// required trims s and rejects it when nothing is left.
func required(s, field string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperr.Validation(field + " is required")
	}
	return s, nil
}

func success(w http.ResponseWriter) {
	httpx.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
