package scope

import "github.com/gin-gonic/gin"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Principal is the authenticated actor. EmployeeID and CompanyID are
// empty for admins that have no employee record of their own.
type Principal struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       string
}

// FromGin rebuilds the principal from the context keys set by the auth
// middleware.
func FromGin(c *gin.Context) Principal {
	return Principal{
		UserID:     c.GetString("user_id"),
		EmployeeID: c.GetString("employee_id"),
		CompanyID:  c.GetString("company_id"),
		Role:       c.GetString("role"),
	}
}
