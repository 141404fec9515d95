package rest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"classroom/internal/entity"
	"classroom/internal/supabase"
)

type AssignmentRepository struct {
	client *supabase.Client
}

func NewAssignmentRepository(client *supabase.Client) *AssignmentRepository {
	return &AssignmentRepository{client: client}
}

func (r *AssignmentRepository) query(c *supabase.Client, userID, classID uuid.UUID) *supabase.Query {
	return c.From(tableAssignments).
		Eq("class_id", classID.String()).
		Eq("user_id", userID.String())
}

func (r *AssignmentRepository) List(ctx context.Context, userID, classID uuid.UUID) ([]entity.Assignment, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return nil, err
	}
	assignments := make([]entity.Assignment, 0)
	if err := r.query(c, userID, classID).Select(ctx, &assignments); err != nil {
		return nil, wrap("list assignments", err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) Get(ctx context.Context, userID, classID, id uuid.UUID) (entity.Assignment, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Assignment{}, err
	}
	var rows []entity.Assignment
	if err := r.query(c, userID, classID).Eq("id", id.String()).Select(ctx, &rows); err != nil {
		return entity.Assignment{}, wrap("get assignment", err)
	}
	return first(rows, "assignment")
}

func (r *AssignmentRepository) Create(ctx context.Context, userID, classID uuid.UUID, text, dueDate string) (entity.Assignment, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Assignment{}, err
	}
	row := map[string]any{
		"class_id": classID,
		"user_id":  userID,
		"text":     text,
		"due_date": dueDate,
		"done":     false,
	}
	var rows []entity.Assignment
	if err := c.From(tableAssignments).Insert(ctx, row, &rows); err != nil {
		return entity.Assignment{}, wrap("create assignment", err)
	}
	return first(rows, "assignment")
}

func (r *AssignmentRepository) Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.AssignmentPatch) (entity.Assignment, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Assignment{}, err
	}
	body := map[string]any{"updated_at": time.Now().UTC()}
	if patch.Text != nil {
		body["text"] = *patch.Text
	}
	if patch.DueDate != nil {
		body["due_date"] = *patch.DueDate
	}
	if patch.Done != nil {
		body["done"] = *patch.Done
	}

	var rows []entity.Assignment
	if err := r.query(c, userID, classID).Eq("id", id.String()).Update(ctx, body, &rows); err != nil {
		return entity.Assignment{}, wrap("update assignment", err)
	}
	return first(rows, "assignment")
}

func (r *AssignmentRepository) Delete(ctx context.Context, userID, classID, id uuid.UUID) error {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return err
	}
	var rows []entity.Assignment
	if err := r.query(c, userID, classID).Eq("id", id.String()).Delete(ctx, &rows); err != nil {
		return wrap("delete assignment", err)
	}
	_, err = first(rows, "assignment")
	return err
}
