// Package repository declares the ownership scoped data access used by the
// HTTP handlers. Every method filters by the caller's user id; a row owned by
// someone else is indistinguishable from a missing row (apperr.KindNotFound).
package repository

import (
	"context"

	"github.com/google/uuid"

	"classroom/internal/entity"
)

type ClassRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Class, error)
	Get(ctx context.Context, userID, id uuid.UUID) (entity.Class, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (entity.Class, error)
	Update(ctx context.Context, userID, id uuid.UUID, name string) (entity.Class, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// TodoRepository lists todos important first, then oldest first.
type TodoRepository interface {
	List(ctx context.Context, userID, classID uuid.UUID) ([]entity.Todo, error)
	Get(ctx context.Context, userID, classID, id uuid.UUID) (entity.Todo, error)
	Create(ctx context.Context, userID, classID uuid.UUID, text string, important bool) (entity.Todo, error)
	Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.TodoPatch) (entity.Todo, error)
	Delete(ctx context.Context, userID, classID, id uuid.UUID) error
}

type AssignmentRepository interface {
	List(ctx context.Context, userID, classID uuid.UUID) ([]entity.Assignment, error)
	Get(ctx context.Context, userID, classID, id uuid.UUID) (entity.Assignment, error)
	Create(ctx context.Context, userID, classID uuid.UUID, text, dueDate string) (entity.Assignment, error)
	Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.AssignmentPatch) (entity.Assignment, error)
	Delete(ctx context.Context, userID, classID, id uuid.UUID) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Classes     ClassRepository
	Todos       TodoRepository
	Assignments AssignmentRepository
}
