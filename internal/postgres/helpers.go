package postgres

import (
	"errors"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// numericValueOutOfRange is the SQLSTATE for INTEGER and NUMERIC overflow.
const numericValueOutOfRange = "22003"

func isOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == numericValueOutOfRange
}

// txError passes domain errors through and marks anything else (begin,
// commit, rollback failures) as internal.
func txError(err error, op string) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	return domain.Internal(err, op, "transaction failed")
}
