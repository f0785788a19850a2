package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_department_company_name"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_department_company_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Department) TableName() string {
	return "departments"
}

// CompanyRef is the minimal parent row needed for validation and
// response shaping, read straight from the companies table.
type CompanyRef struct {
	ID   uuid.UUID
	Name string
}

// EmployeeRef is the minimal employee row needed for cascade deletion,
// read straight from the employees table.
type EmployeeRef struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CompanyID uuid.UUID
}
