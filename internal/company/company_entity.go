package company

import (
	"time"

	"github.com/google/uuid"
)

// Company is the tenant boundary: departments and employees are
// partitioned by it and cascade-deleted with it.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Company) TableName() string {
	return "companies"
}

// Stats are derived per read, never stored.
type Stats struct {
	Departments int64
	Employees   int64
}
