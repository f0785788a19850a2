package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the identity record behind every principal. Employees own
// exactly one; admins may exist without an employee record.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Role      string    `gorm:"type:varchar(10);not null;default:'employee'"`
	FirstName string    `gorm:"type:varchar(150)"`
	LastName  string    `gorm:"type:varchar(150)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SetName splits a display name on the first whitespace boundary:
// everything before it becomes the first name, the remainder the last.
func (u *User) SetName(name string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		u.FirstName = ""
		u.LastName = ""
		return
	}
	u.FirstName = parts[0]
	u.LastName = strings.Join(parts[1:], " ")
}

// NormalizeEmail lower-cases and trims an address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
