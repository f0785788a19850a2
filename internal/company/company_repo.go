package company

import (
	"context"

	"go-empdir/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, c *Company) error
	FindAll(ctx context.Context, visible scope.Filter) ([]Company, error)
	FindByID(ctx context.Context, id string, visible scope.Filter) (*Company, error)
	Update(ctx context.Context, c *Company) error
	Delete(ctx context.Context, id string) error

	// Derived counts, recomputed from live relationships on every call.
	CountDepartments(ctx context.Context, companyID string) (int64, error)
	CountEmployees(ctx context.Context, companyID string) (int64, error)

	// Cascade helpers for transactional company deletion.
	ListEmployeeUserIDs(ctx context.Context, companyID string) ([]string, error)
	DeleteEmployees(ctx context.Context, companyID string) error
	DeleteDepartments(ctx context.Context, companyID string) error
	DeleteUsers(ctx context.Context, userIDs []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, visible scope.Filter) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Scopes(visible).
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) FindByID(ctx context.Context, id string, visible scope.Filter) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).
		Scopes(visible).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) Update(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Company{}, "id = ?", id).Error
}

func (r *repository) CountDepartments(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

// CountEmployees counts through the department relation, matching how
// the company-wide headcount is defined.
func (r *repository) CountEmployees(ctx context.Context, companyID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Joins("JOIN departments ON departments.id = employees.department_id").
		Where("departments.company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *repository) ListEmployeeUserIDs(ctx context.Context, companyID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("company_id = ?", companyID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) DeleteEmployees(ctx context.Context, companyID string) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM employees WHERE company_id = ?", companyID).Error
}

func (r *repository) DeleteDepartments(ctx context.Context, companyID string) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM departments WHERE company_id = ?", companyID).Error
}

func (r *repository) DeleteUsers(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("DELETE FROM users WHERE id IN ?", userIDs).Error
}
