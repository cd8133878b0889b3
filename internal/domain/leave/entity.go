package leave

import "time"

// Leave categories mirror the product's leave policy catalogue.
const (
	CategoryAnnual       = "ANNUAL"
	CategorySick         = "SICK"
	CategoryMaternity    = "MATERNITY"
	CategoryPaternity    = "PATERNITY"
	CategoryEmergency    = "EMERGENCY"
	CategoryStudy        = "STUDY"
	CategoryUnpaid       = "UNPAID"
	CategoryCompensatory = "COMPENSATORY"
)

// Type is a leave policy definition.
type Type struct {
	ID                  string
	Name                string
	Code                string
	Category            string
	DaysAllowedPerYear  float64
	MaxConsecutiveDays  *float64
	MinNoticeDays       int
	RequiresCertificate bool
	CarryForwardAllowed bool
	CarryForwardMaxDays *float64
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Balance is the per-employee, per-type, per-year leave ledger row. It is
// mutated only through the ledger's deduct/restore operations.
type Balance struct {
	ID             string
	EmployeeID     string
	LeaveTypeID    string
	Year           int
	AllocatedDays  float64
	UsedDays       float64
	CarriedForward float64
	AdjustmentDays float64
	UpdatedAt      time.Time
}

// AvailableDays is allocated + carried + adjustment − used, floored at zero.
func (b Balance) AvailableDays() float64 {
	available := b.AllocatedDays + b.CarriedForward + b.AdjustmentDays - b.UsedDays
	if available < 0 {
		return 0
	}
	return available
}

// RequestStatus is the lifecycle state of a leave request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
	RequestStatusWithdrawn RequestStatus = "WITHDRAWN"
)

// Request is a leave application. TotalDays is fixed at creation: weekdays in
// range excluding holidays, or 0.5 for a flagged half-day.
type Request struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   float64
	IsHalfDay   bool
	Reason      string

	Status          RequestStatus
	AppliedAt       time.Time
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled reports whether the request may still be cancelled or
// withdrawn: only while PENDING or APPROVED and before the leave starts.
func (r Request) CanBeCancelled(today time.Time) bool {
	if r.Status != RequestStatusPending && r.Status != RequestStatusApproved {
		return false
	}
	return r.StartDate.After(today)
}
