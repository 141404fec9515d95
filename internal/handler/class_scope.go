package handler

import (
	"net/http"

	"github.com/google/uuid"

	"classroom/internal/repository"
	"classroom/internal/session"
)

// classScope resolves the caller and the parent class of a child resource.
// The class must belong to the caller before any child row is touched.
type classScope struct {
	classes repository.ClassRepository
}

func (s classScope) resolve(r *http.Request) (session.Identity, uuid.UUID, error) {
	id, err := caller(r)
	if err != nil {
		return session.Identity{}, uuid.Nil, err
	}
	classID, err := pathID(r, "classID", "class")
	if err != nil {
		return session.Identity{}, uuid.Nil, err
	}
	if _, err := s.classes.Get(r.Context(), id.UserID, classID); err != nil {
		return session.Identity{}, uuid.Nil, err
	}
	return id, classID, nil
}
