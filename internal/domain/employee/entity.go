package employee

import "time"

// Employee is read-only reference data for the engine; the management UI that
// mutates it lives outside this service.
type Employee struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	DepartmentID *string
	IsActive     bool
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
