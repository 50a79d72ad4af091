package store

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("unique constraint violated")
)

const uniqueViolation = "23505"

// translate maps driver and gorm errors onto the store sentinels and wraps
// everything else with op.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.WithMessage(ErrDuplicate, op)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errors.WithMessage(ErrDuplicate, op)
	}

	return errors.Wrap(err, op)
}
