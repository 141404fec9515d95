package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"classroom/internal/entity"
)

const todoColumns = `id, class_id, user_id, text, done, important, created_at`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (entity.Todo, error) {
	var t entity.Todo
	err := s.Scan(&t.ID, &t.ClassID, &t.UserID, &t.Text, &t.Done, &t.Important, &t.CreatedAt)
	return t, err
}

func (r *TodoRepository) List(ctx context.Context, userID, classID uuid.UUID) ([]entity.Todo, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE class_id = $1 AND user_id = $2
		ORDER BY important DESC, created_at ASC
	`, classID, userID)
	if err != nil {
		return nil, classify("list todos", "todo", err)
	}
	defer rows.Close()

	todos := make([]entity.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, classify("scan todo", "todo", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list todos", "todo", err)
	}
	return todos, nil
}

func (r *TodoRepository) Get(ctx context.Context, userID, classID, id uuid.UUID) (entity.Todo, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	t, err := scanTodo(r.db.QueryRowContext(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1 AND class_id = $2 AND user_id = $3
	`, id, classID, userID))
	if err != nil {
		return entity.Todo{}, classify("get todo", "todo", err)
	}
	return t, nil
}

func (r *TodoRepository) Create(ctx context.Context, userID, classID uuid.UUID, text string, important bool) (entity.Todo, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	t, err := scanTodo(r.db.QueryRowContext(ctx, `
		INSERT INTO todos (class_id, user_id, text, important)
		VALUES ($1, $2, $3, $4)
		RETURNING `+todoColumns,
		classID, userID, text, important))
	if err != nil {
		return entity.Todo{}, classify("create todo", "todo", err)
	}
	return t, nil
}

func (r *TodoRepository) Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.TodoPatch) (entity.Todo, error) {
	var set setClause
	if patch.Text != nil {
		set.add("text", *patch.Text)
	}
	if patch.Done != nil {
		set.add("done", *patch.Done)
	}
	if patch.Important != nil {
		set.add("important", *patch.Important)
	}
	if len(set.sets) == 0 {
		return r.Get(ctx, userID, classID, id)
	}
	query := `UPDATE todos SET ` + strings.Join(set.sets, ", ") +
		` WHERE id = ` + set.next(id) +
		` AND class_id = ` + set.next(classID) +
		` AND user_id = ` + set.next(userID) +
		` RETURNING ` + todoColumns

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		return entity.Todo{}, classify("update todo", "todo", err)
	}
	return t, nil
}

func (r *TodoRepository) Delete(ctx context.Context, userID, classID, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM todos
		WHERE id = $1 AND class_id = $2 AND user_id = $3
	`, id, classID, userID)
	if err != nil {
		return classify("delete todo", "todo", err)
	}
	return expectOne(res, "delete todo", "todo")
}
