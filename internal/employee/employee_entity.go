package employee

import (
	"time"

	"go-empdir/internal/identity"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	MobileNumber string    `gorm:"type:varchar(16);not null"`
	Address      string    `gorm:"type:varchar(255)"`
	Designation  string    `gorm:"type:varchar(100)"`
	Status       string    `gorm:"type:varchar(10);not null;default:'pending'"`
	HiredOn      *time.Time `gorm:"type:date"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User *identity.User `gorm:"foreignKey:UserID"`
}

func (Employee) TableName() string {
	return "employees"
}

// DaysEmployed counts whole days since hiring, zero when the hire date
// is unset or in the future.
func (e *Employee) DaysEmployed(now time.Time) int64 {
	if e.HiredOn == nil {
		return 0
	}
	days := int64(now.Sub(*e.HiredOn).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DepartmentRef and CompanyParentRef are lightweight parent rows read
// straight from their tables for cross-entity validation.
type DepartmentRef struct {
	ID        uuid.UUID
	Name      string
	CompanyID uuid.UUID
}

type CompanyParentRef struct {
	ID   uuid.UUID
	Name string
}
