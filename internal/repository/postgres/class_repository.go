package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"classroom/internal/entity"
)

type ClassRepository struct {
	db *sql.DB
}

func NewClassRepository(db *sql.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Class, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM classes
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, classify("list classes", "class", err)
	}
	defer rows.Close()

	classes := make([]entity.Class, 0)
	for rows.Next() {
		var c entity.Class
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, classify("scan class", "class", err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list classes", "class", err)
	}
	return classes, nil
}

func (r *ClassRepository) Get(ctx context.Context, userID, id uuid.UUID) (entity.Class, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c entity.Class
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM classes
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err != nil {
		return entity.Class{}, classify("get class", "class", err)
	}
	return c, nil
}

func (r *ClassRepository) Create(ctx context.Context, userID uuid.UUID, name string) (entity.Class, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c entity.Class
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO classes (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`, userID, name).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err != nil {
		return entity.Class{}, classify("create class", "class", err)
	}
	return c, nil
}

func (r *ClassRepository) Update(ctx context.Context, userID, id uuid.UUID, name string) (entity.Class, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c entity.Class
	err := r.db.QueryRowContext(ctx, `
		UPDATE classes
		SET name = $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, created_at
	`, id, userID, name).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err != nil {
		return entity.Class{}, classify("update class", "class", err)
	}
	return c, nil
}

// Delete removes the class; its todos and assignments go with it.
func (r *ClassRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM classes
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return classify("delete class", "class", err)
	}
	return expectOne(res, "delete class", "class")
}
