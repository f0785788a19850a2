package department

import (
	"errors"

	companyerrors "go-empdir/internal/company/errors"
	departmenterrors "go-empdir/internal/department/errors"
	"go-empdir/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperror.NewValidation(map[string]string{
			"name": "Department with this name already exists in this company.",
		})
	}

	return err
}

// mapCompanyLookupError is used where the missing row is the parent
// company rather than a department.
func mapCompanyLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	return mapRepositoryError(err)
}
