package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/use-of-force/internal/domain"
)

// SQLSTATE codes mapped to domain errors. 55000 is raised by the report_edit
// append-only trigger; 40001 and 40P01 lose a race on a locked report row.
var codeErrors = map[string]error{
	"23505": domain.ErrConflict,   // unique_violation
	"23503": domain.ErrNotFound,   // foreign_key_violation
	"23514": domain.ErrValidation, // check_violation
	"55000": domain.ErrConflict,   // object_not_in_prerequisite_state
	"40001": domain.ErrConflict,   // serialization_failure
	"40P01": domain.ErrConflict,   // deadlock_detected
}

// MapError wraps err with the entity and id and translates what it can into
// domain errors. Context cancellation is kept as is.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := codeErrors[pgErr.Code]; ok {
			return fmt.Errorf("%s %v: %w: %s", entity, id, mapped, pgErr.Message)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}
