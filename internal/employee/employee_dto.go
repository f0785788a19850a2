package employee

const hiredOnLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	// Company is ignored for managers (their own company is forced) and
	// required for admins.
	Company      string  `json:"company" binding:"omitempty,uuid"`
	Department   string  `json:"department" binding:"required,uuid"`
	MobileNumber string  `json:"mobile_number" binding:"required,mobile"`
	Address      string  `json:"address" binding:"omitempty,max=255"`
	Designation  string  `json:"designation" binding:"omitempty,max=100"`
	Status       string  `json:"status" binding:"omitempty,oneof=pending active inactive"`
	HiredOn      *string `json:"hired_on" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Role         *string `json:"role" binding:"omitempty,oneof=admin manager employee"`
	Department   *string `json:"department" binding:"omitempty,uuid"`
	MobileNumber *string `json:"mobile_number" binding:"omitempty,mobile"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	Designation  *string `json:"designation" binding:"omitempty,max=100"`
	Status       *string `json:"status" binding:"omitempty,oneof=pending active inactive"`
	HiredOn      *string `json:"hired_on" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProfileRequest is the self-service subset: contact details
// only, never role, status, company or department.
type UpdateProfileRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	MobileNumber *string `json:"mobile_number" binding:"omitempty,mobile"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	User         string  `json:"user"`
	Company      string  `json:"company"`
	Department   string  `json:"department"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	MobileNumber string  `json:"mobile_number"`
	Address      string  `json:"address"`
	Designation  string  `json:"designation"`
	Status       string  `json:"status"`
	HiredOn      *string `json:"hired_on"`
	DaysEmployed int64   `json:"days_employed"`
}
