// Package postgres stores rows directly in PostgreSQL through database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"classroom/internal/apperr"
	"classroom/internal/repository"
)

const queryTimeout = 5 * time.Second

func NewStore(db *sql.DB) repository.Store {
	return repository.Store{
		Classes:     NewClassRepository(db),
		Todos:       NewTodoRepository(db),
		Assignments: NewAssignmentRepository(db),
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// classify turns sql.ErrNoRows into a not found error for what and wraps
// anything else as an upstream failure.
func classify(op, what string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(what + " not found")
	}
	return apperr.Upstream(fmt.Errorf("%s: %w", op, err))
}

func expectOne(res sql.Result, op, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Upstream(fmt.Errorf("%s: %w", op, err))
	}
	if n == 0 {
		return apperr.NotFound(what + " not found")
	}
	return nil
}

// setClause accumulates "column = $n" assignments for dynamic updates.
type setClause struct {
	sets []string
	args []any
}

func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// next returns the placeholder for an extra argument appended after the sets.
func (s *setClause) next(value any) string {
	s.args = append(s.args, value)
	return fmt.Sprintf("$%d", len(s.args))
}
