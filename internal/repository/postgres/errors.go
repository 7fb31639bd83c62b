package postgres

import (
	"errors"
	"fmt"

	"docspace/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the repositories react to
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgCheckError checks if error is a CHECK constraint violation, raised by
// the enum checks on item type, member role and folder permission
func IsPgCheckError(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// WrapWriteError turns constraint violations into domain errors and wraps
// anything else with op
func WrapWriteError(op string, err error) error {
	if IsPgCheckError(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return &domain.ValidationError{Message: fmt.Sprintf("%s: value rejected by %s", op, pgErr.ConstraintName)}
	}
	return fmt.Errorf("%s: %w", op, err)
}
