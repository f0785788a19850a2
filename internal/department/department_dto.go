package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	// Company is ignored for managers (their own company is forced) and
	// required for admins.
	Company string `json:"company" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type DepartmentResponse struct {
	ID                string `json:"id"`
	Company           string `json:"company"`
	Name              string `json:"name"`
	NumberOfEmployees int64  `json:"number_of_employees"`
}
