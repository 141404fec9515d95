package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"classroom/internal/entity"
)

// due_date is read back as text so it keeps the YYYY-MM-DD wire format.
const assignmentColumns = `id, class_id, user_id, text, due_date::text, done, updated_at`

type AssignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func scanAssignment(s scanner) (entity.Assignment, error) {
	var a entity.Assignment
	err := s.Scan(&a.ID, &a.ClassID, &a.UserID, &a.Text, &a.DueDate, &a.Done, &a.UpdatedAt)
	return a, err
}

func (r *AssignmentRepository) List(ctx context.Context, userID, classID uuid.UUID) ([]entity.Assignment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE class_id = $1 AND user_id = $2
	`, classID, userID)
	if err != nil {
		return nil, classify("list assignments", "assignment", err)
	}
	defer rows.Close()

	assignments := make([]entity.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, classify("scan assignment", "assignment", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list assignments", "assignment", err)
	}
	return assignments, nil
}

func (r *AssignmentRepository) Get(ctx context.Context, userID, classID, id uuid.UUID) (entity.Assignment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	a, err := scanAssignment(r.db.QueryRowContext(ctx, `
		SELECT `+assignmentColumns+`
		FROM assignments
		WHERE id = $1 AND class_id = $2 AND user_id = $3
	`, id, classID, userID))
	if err != nil {
		return entity.Assignment{}, classify("get assignment", "assignment", err)
	}
	return a, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, userID, classID uuid.UUID, text, dueDate string) (entity.Assignment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	a, err := scanAssignment(r.db.QueryRowContext(ctx, `
		INSERT INTO assignments (class_id, user_id, text, due_date)
		VALUES ($1, $2, $3, $4::date)
		RETURNING `+assignmentColumns,
		classID, userID, text, dueDate))
	if err != nil {
		return entity.Assignment{}, classify("create assignment", "assignment", err)
	}
	return a, nil
}

func (r *AssignmentRepository) Update(ctx context.Context, userID, classID, id uuid.UUID, patch entity.AssignmentPatch) (entity.Assignment, error) {
	set := setClause{sets: []string{"updated_at = now()"}}
	if patch.Text != nil {
		set.add("text", *patch.Text)
	}
	if patch.DueDate != nil {
		set.add("due_date", *patch.DueDate)
	}
	if patch.Done != nil {
		set.add("done", *patch.Done)
	}
	query := `UPDATE assignments SET ` + strings.Join(set.sets, ", ") +
		` WHERE id = ` + set.next(id) +
		` AND class_id = ` + set.next(classID) +
		` AND user_id = ` + set.next(userID) +
		` RETURNING ` + assignmentColumns

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		return entity.Assignment{}, classify("update assignment", "assignment", err)
	}
	return a, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, userID, classID, id uuid.UUID) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM assignments
		WHERE id = $1 AND class_id = $2 AND user_id = $3
	`, id, classID, userID)
	if err != nil {
		return classify("delete assignment", "assignment", err)
	}
	return expectOne(res, "delete assignment", "assignment")
}
