package company

type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateCompanyRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CompanyResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	NumberOfDepartments int64  `json:"number_of_departments"`
	NumberOfEmployees   int64  `json:"number_of_employees"`
}
