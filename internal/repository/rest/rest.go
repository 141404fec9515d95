// Package rest stores rows through the provider's table API, authenticated as
// the caller whose identity is on the request context.
package rest

import (
	"context"
	"fmt"

	"classroom/internal/apperr"
	"classroom/internal/repository"
	"classroom/internal/session"
	"classroom/internal/supabase"
)

const (
	tableClasses     = "classes"
	tableTodos       = "todos"
	tableAssignments = "assignments"
)

// NewStore returns the repositories backed by client.
func NewStore(client *supabase.Client) repository.Store {
	return repository.Store{
		Classes:     NewClassRepository(client),
		Todos:       NewTodoRepository(client),
		Assignments: NewAssignmentRepository(client),
	}
}

// scoped derives a client that acts as the caller on the request context.
func scoped(ctx context.Context, client *supabase.Client) (*supabase.Client, error) {
	id, ok := session.FromContext(ctx)
	if !ok || id.AccessToken == "" {
		return nil, apperr.Unauthorized("login required")
	}
	return client.WithToken(id.AccessToken), nil
}

// first returns the only row of rows or a not found error.
func first[T any](rows []T, what string) (T, error) {
	var zero T
	if len(rows) == 0 {
		return zero, apperr.NotFound(what + " not found")
	}
	return rows[0], nil
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
