package department

import (
	"context"

	"go-empdir/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context, visible scope.Filter) ([]Department, error)
	FindAllByCompany(ctx context.Context, companyID string, visible scope.Filter) ([]Department, error)
	FindByID(ctx context.Context, id string, visible scope.Filter) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id string) error

	// FindCompany resolves the parent company through the caller's
	// company visibility filter.
	FindCompany(ctx context.Context, id string, visible scope.Filter) (*CompanyRef, error)
	CountEmployees(ctx context.Context, departmentID string) (int64, error)

	// Cascade helpers for transactional department deletion.
	ListEmployees(ctx context.Context, departmentID string) ([]EmployeeRef, error)
	DeleteEmployees(ctx context.Context, departmentID string) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context, visible scope.Filter) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(visible).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, visible scope.Filter) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(visible).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id string, visible scope.Filter) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Scopes(visible).
		First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) FindCompany(ctx context.Context, id string, visible scope.Filter) (*CompanyRef, error) {
	var ref CompanyRef
	err := r.db.WithContext(ctx).
		Table("companies").
		Scopes(visible).
		Select("id", "name").
		Where("id = ?", id).
		Take(&ref).Error
	return &ref, err
}

func (r *repository) CountEmployees(ctx context.Context, departmentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}

func (r *repository) ListEmployees(ctx context.Context, departmentID string) ([]EmployeeRef, error) {
	var refs []EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "user_id", "company_id").
		Where("department_id = ?", departmentID).
		Find(&refs).Error
	return refs, err
}

func (r *repository) DeleteEmployees(ctx context.Context, departmentID string) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM employees WHERE department_id = ?", departmentID).Error
}

func (r *repository) DeleteUsers(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec("DELETE FROM users WHERE id IN ?", userIDs).Error
}
