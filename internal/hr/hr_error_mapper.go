package hr

import (
	"errors"

	hrerrors "go-workforce/internal/hr/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hrerrors.ErrHRProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_hr_profiles_account" {
		return hrerrors.ErrHRProfileAlreadyExists
	}

	return err
}
