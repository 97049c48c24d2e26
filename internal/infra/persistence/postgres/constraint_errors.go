package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"

	constraintAccountsUsername = "uq_accounts_username"
	constraintAccountsEmail    = "uq_accounts_email"
)

// uniqueViolationConstraint returns the violated constraint name when err is a
// unique violation. The name is empty when the driver did not report it.
func uniqueViolationConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}

	// Present when the connection was opened with TranslateError.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}

	return "", false
}

func isForeignKeyConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}

	return errors.Is(err, gorm.ErrForeignKeyViolated)
}
