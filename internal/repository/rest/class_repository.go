package rest

import (
	"context"

	"github.com/google/uuid"

	"classroom/internal/entity"
	"classroom/internal/supabase"
)

type ClassRepository struct {
	client *supabase.Client
}

func NewClassRepository(client *supabase.Client) *ClassRepository {
	return &ClassRepository{client: client}
}

func (r *ClassRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Class, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return nil, err
	}
	classes := make([]entity.Class, 0)
	if err := c.From(tableClasses).Eq("user_id", userID.String()).Select(ctx, &classes); err != nil {
		return nil, wrap("list classes", err)
	}
	return classes, nil
}

func (r *ClassRepository) Get(ctx context.Context, userID, id uuid.UUID) (entity.Class, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Class{}, err
	}
	var rows []entity.Class
	err = c.From(tableClasses).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Select(ctx, &rows)
	if err != nil {
		return entity.Class{}, wrap("get class", err)
	}
	return first(rows, "class")
}

func (r *ClassRepository) Create(ctx context.Context, userID uuid.UUID, name string) (entity.Class, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Class{}, err
	}
	row := map[string]any{
		"user_id": userID,
		"name":    name,
	}
	var rows []entity.Class
	if err := c.From(tableClasses).Insert(ctx, row, &rows); err != nil {
		return entity.Class{}, wrap("create class", err)
	}
	return first(rows, "class")
}

func (r *ClassRepository) Update(ctx context.Context, userID, id uuid.UUID, name string) (entity.Class, error) {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return entity.Class{}, err
	}
	var rows []entity.Class
	err = c.From(tableClasses).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Update(ctx, map[string]any{"name": name}, &rows)
	if err != nil {
		return entity.Class{}, wrap("update class", err)
	}
	return first(rows, "class")
}

func (r *ClassRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	c, err := scoped(ctx, r.client)
	if err != nil {
		return err
	}
	var rows []entity.Class
	err = c.From(tableClasses).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Delete(ctx, &rows)
	if err != nil {
		return wrap("delete class", err)
	}
	_, err = first(rows, "class")
	return err
}
