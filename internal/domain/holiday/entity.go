package holiday

import "time"

// Holiday is one calendar holiday. A non-nil RecurrenceRule holds an RRULE
// string (e.g. "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1") anchored on Date; the
// holiday then applies on every expanded occurrence, not just Date itself.
// An empty DepartmentIDs list means the holiday applies to all departments.
type Holiday struct {
	ID             string
	Name           string
	Date           time.Time
	RecurrenceRule *string
	DepartmentIDs  []string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AppliesToDepartment reports whether the holiday covers the department.
func (h Holiday) AppliesToDepartment(departmentID *string) bool {
	if len(h.DepartmentIDs) == 0 {
		return true
	}
	if departmentID == nil {
		return false
	}
	for _, id := range h.DepartmentIDs {
		if id == *departmentID {
			return true
		}
	}
	return false
}
