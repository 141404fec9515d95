package rest

import (
	"context"

	"github.com/google/uuid"

	"classroom/internal/entity"
	"classroom/internal/supabase"
)

type TodoRepository struct {
	client *supabase.Client
}

func NewTodoRepository(client *supabase.Client) *TodoRepository {
	return &TodoRepository{client: client}
}

func (r *TodoRepository) query(c *supabase.Client, userID, classID uuid.UUID) *supabase.Query {
	return c.From(tableTodos).
		Eq("class_id", classID.String()).
		Eq("user_id", userID.String())
}

func (r *TodoRepository) List(ctx context.Context, userID, classID uuid.UUID) ([]entity.Todo, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return nil, err
	}
	todos := make([]entity.Todo, 0)
	err = r.query(c, userID, classID).
		Order("important", true).
		Order("created_at", false).
		Select(ctx, &todos)
	if err != nil {
		return nil, wrap("list todos", err)
	}
	return todos, nil
}

func (r *TodoRepository) Get(ctx context.Context, userID, classID, id uuid.UUID) (entity.Todo, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Todo{}, err
	}
	var rows []entity.Todo
	if err := r.query(c, userID, classID).Eq("id", id.String()).Select(ctx, &rows); err != nil {
		return entity.Todo{}, wrap("get todo", err)
	}
	return first(rows, "todo")
}

func (r *TodoRepository) Create(ctx context.Context, userID, classID uuid.UUID, text string, important bool) (entity.Todo, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Todo{}, err
	}
	row := map[string]any{
		"class_id":  classID,
		"user_id":   userID,
		"text":      text,
		"done":      false,
		"important": important,
	}
	var rows []entity.Todo
	if err := c.From(tableTodos).Insert(ctx, row, &rows); err != nil {
		return entity.Todo{}, wrap("create todo", err)
	}
	return first(rows, "todo")
}

func (r *TodoRepository) Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.TodoPatch) (entity.Todo, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Todo{}, err
	}
	var rows []entity.Todo
	if err := r.query(c, userID, classID).Eq("id", id.String()).Update(ctx, patch, &rows); err != nil {
		return entity.Todo{}, wrap("update todo", err)
	}
	return first(rows, "todo")
}

func (r *TodoRepository) Delete(ctx context.Context, userID, classID, id uuid.UUID) error {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return err
	}
	var rows []entity.Todo
	if err := r.query(c, userID, classID).Eq("id", id.String()).Delete(ctx, &rows); err != nil {
		return wrap("delete todo", err)
	}
	_, err = first(rows, "todo")
	return err
}
