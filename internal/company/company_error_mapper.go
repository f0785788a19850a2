package company

import (
	"errors"

	companyerrors "go-empdir/internal/company/errors"
	"go-empdir/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.NewValidation(map[string]string{
			"name": "Company with this name already exists.",
		})
	}

	return err
}
