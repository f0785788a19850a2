package events

import "time"

const EmployeeLifecycleTopic = "directory.employee.lifecycle.v1"

const (
	EmployeeCreatedType = "employee_created"
	EmployeeDeletedType = "employee_deleted"
)

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	EmployeeID   string    `json:"employee_id"`
	CompanyID    string    `json:"company_id"`
	DepartmentID string    `json:"department_id"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type EmployeeDeletedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
