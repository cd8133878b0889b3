package leave

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	leaveTestDB     *database.DB
	leaveTestDBOnce sync.Once
)

func openLeaveTestDB(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	leaveTestDBOnce.Do(func() {
		var err error
		leaveTestDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)
	})
	return leaveTestDB
}

func cleanupLeaveData(t *testing.T, db *database.DB) {
	ctx := context.Background()
	for _, table := range []string{"audit_entries", "leave_requests", "leave_balances", "leave_types", "employees"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

type noHolidays struct{}

func (noHolidays) IsHoliday(ctx context.Context, date time.Time, departmentID *string) (bool, error) {
	return false, nil
}

func (noHolidays) HolidaysInRange(ctx context.Context, from, to time.Time, departmentID *string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

func newLeaveTestService(db *database.DB) *Service {
	return NewService(
		db,
		postgresql.NewLeaveTypeRepository(db),
		postgresql.NewLeaveBalanceRepository(db),
		postgresql.NewLeaveRequestRepository(db),
		postgresql.NewAuditRepository(db),
		noHolidays{},
	)
}

// seedLeaveFixture creates an employee, an annual leave type and a fresh
// 12-day balance for the given year, returning the three IDs.
func seedLeaveFixture(t *testing.T, ctx context.Context, db *database.DB, year int) (employeeID, leaveTypeID, balanceID string) {
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, employee_code, first_name, last_name, is_active, hire_date, created_at, updated_at)
		VALUES (gen_random_uuid(), 'EMP001', 'Test', 'Employee', TRUE, '2025-01-01', NOW(), NOW())
		RETURNING id
	`).Scan(&employeeID)
	require.NoError(t, err)

	err = db.QueryRow(ctx, `
		INSERT INTO leave_types (id, name, code, category, days_allowed_per_year, max_consecutive_days,
			min_notice_days, requires_certificate, carry_forward_allowed, carry_forward_max_days,
			is_active, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Annual Leave', 'ANNUAL', 'ANNUAL', 12, 12, 0, FALSE, FALSE, 0, TRUE, NOW(), NOW())
		RETURNING id
	`).Scan(&leaveTypeID)
	require.NoError(t, err)

	err = db.QueryRow(ctx, `
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, allocated_days, used_days, carried_forward, adjustment_days, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, 12, 0, 0, 0, NOW())
		RETURNING id
	`, employeeID, leaveTypeID, year).Scan(&balanceID)
	require.NoError(t, err)

	return employeeID, leaveTypeID, balanceID
}

func TestRejectApprovedRequestRestoresBalance(t *testing.T) {
	db := openLeaveTestDB(t)
	defer cleanupLeaveData(t, db)
	cleanupLeaveData(t, db)

	ctx := context.Background()
	year := time.Now().UTC().Year()
	employeeID, leaveTypeID, _ := seedLeaveFixture(t, ctx, db, year)
	svc := newLeaveTestService(db)

	created, err := svc.RequestRepository.Create(ctx, leave.Request{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		StartDate:   time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(year, 6, 2, 0, 0, 0, 0, time.UTC),
		TotalDays:   2,
		Reason:      "family trip",
		Status:      leave.RequestStatusPending,
		AppliedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, created.ID, employeeID)
	require.NoError(t, err)

	balance, err := svc.BalanceRepository.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	require.NoError(t, err)
	require.Equal(t, 2.0, balance.UsedDays)

	rejected, err := svc.Reject(ctx, created.ID, employeeID, leave.RejectRequestRequest{Reason: "roster coverage gap"})
	require.NoError(t, err)
	assert.Equal(t, leave.RequestStatusRejected, rejected.Status)

	// the approval's deduction comes back
	balance, err = svc.BalanceRepository.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.UsedDays)
}

func TestRejectIsTerminal(t *testing.T) {
	db := openLeaveTestDB(t)
	defer cleanupLeaveData(t, db)
	cleanupLeaveData(t, db)

	ctx := context.Background()
	year := time.Now().UTC().Year()
	employeeID, leaveTypeID, _ := seedLeaveFixture(t, ctx, db, year)
	svc := newLeaveTestService(db)

	created, err := svc.RequestRepository.Create(ctx, leave.Request{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		StartDate:   time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
		TotalDays:   1,
		Reason:      "appointment",
		Status:      leave.RequestStatusPending,
		AppliedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = svc.Reject(ctx, created.ID, employeeID, leave.RejectRequestRequest{Reason: "understaffed"})
	require.NoError(t, err)

	// a second rejection and a late approval both bounce
	_, err = svc.Reject(ctx, created.ID, employeeID, leave.RejectRequestRequest{Reason: "understaffed"})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)

	_, err = svc.Approve(ctx, created.ID, employeeID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}
