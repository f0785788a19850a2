package employee

import (
	"context"

	"go-empdir/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context, visible scope.Filter) ([]Employee, error)
	FindAllByDepartment(ctx context.Context, departmentID string, visible scope.Filter) ([]Employee, error)
	FindByID(ctx context.Context, id string, visible scope.Filter) (*Employee, error)
	FindByUserID(ctx context.Context, userID string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id string) error

	// Parent lookups for cross-entity validation. The department read is
	// scoped so a caller cannot probe another company's departments.
	GetDepartment(ctx context.Context, id string, visible scope.Filter) (*DepartmentRef, error)
	GetCompany(ctx context.Context, id string) (*CompanyParentRef, error)
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context, visible scope.Filter) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Scopes(visible).
		Preload("User").
		Order("name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, departmentID string, visible scope.Filter) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Scopes(visible).
		Where("department_id = ?", departmentID).
		Preload("User").
		Order("name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindByID(ctx context.Context, id string, visible scope.Filter) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Scopes(visible).
		Preload("User").
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&emp, "user_id = ?", userID).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Omit("User").Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) GetDepartment(ctx context.Context, id string, visible scope.Filter) (*DepartmentRef, error) {
	var ref DepartmentRef
	err := r.db.WithContext(ctx).
		Table("departments").
		Scopes(visible).
		Select("id", "name", "company_id").
		Where("id = ?", id).
		Take(&ref).Error
	return &ref, err
}

func (r *repository) GetCompany(ctx context.Context, id string) (*CompanyParentRef, error) {
	var ref CompanyParentRef
	err := r.db.WithContext(ctx).
		Table("companies").
		Select("id", "name").
		Where("id = ?", id).
		Take(&ref).Error
	return &ref, err
}
