package employee

import (
	"errors"

	employeeerrors "go-empdir/internal/employee/errors"
	"go-empdir/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.NewValidation(map[string]string{
			"email": "User with this email already exists.",
		})
	}

	return err
}
