package postgresql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// openTestDB connects to TEST_DATABASE_URL or skips the test when it is not
// set, so the pure unit suite stays runnable without PostgreSQL.
func openTestDB(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)
	})
	return testDB
}

func cleanupAttendanceData(t *testing.T, db *database.DB) {
	ctx := context.Background()
	for _, table := range []string{"attendance_records", "leave_balances", "leave_types", "employees"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, code string) string {
	var employeeID string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, employee_code, first_name, last_name, is_active, hire_date, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, 'Test', 'Employee', TRUE, '2025-01-01', NOW(), NOW())
		RETURNING id
	`, code).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func presentRecord(employeeID string, date time.Time) attendance.Record {
	in := date.Add(9 * time.Hour)
	out := date.Add(17 * time.Hour)
	return attendance.Record{
		EmployeeID:   employeeID,
		Date:         date,
		Pairs:        []attendance.TimePair{{In: &in, Out: &out}},
		TotalMinutes: 480,
		WorkMinutes:  480,
		FirstIn:      &in,
		LastOut:      &out,
		Status:       attendance.StatusPresent,
	}
}

func TestAttendanceRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	defer cleanupAttendanceData(t, db)
	cleanupAttendanceData(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "EMP001")
	repo := postgresql.NewAttendanceRecordRepository(db)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, presentRecord(employeeID, date))

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Version)

	got, err := repo.GetByEmployeeAndDate(ctx, employeeID, date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, attendance.StatusPresent, got.Status)
	require.Len(t, got.Pairs, 1)
	assert.Equal(t, 480, got.WorkMinutes)
}

func TestAttendanceRepository_DuplicateDayIsConflict(t *testing.T) {
	db := openTestDB(t)
	defer cleanupAttendanceData(t, db)
	cleanupAttendanceData(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "EMP001")
	repo := postgresql.NewAttendanceRecordRepository(db)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, presentRecord(employeeID, date))
	require.NoError(t, err)

	_, err = repo.Create(ctx, presentRecord(employeeID, date))
	assert.ErrorIs(t, err, attendance.ErrConflict)
}

func TestAttendanceRepository_StaleVersionIsConflict(t *testing.T) {
	db := openTestDB(t)
	defer cleanupAttendanceData(t, db)
	cleanupAttendanceData(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "EMP001")
	repo := postgresql.NewAttendanceRecordRepository(db)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	created, err := repo.Create(ctx, presentRecord(employeeID, date))
	require.NoError(t, err)

	// first writer bumps the version
	created.Status = attendance.StatusLate
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	// second writer still holds version 1
	stale := created
	stale.Version = 1
	_, err = repo.Update(ctx, stale)
	assert.ErrorIs(t, err, attendance.ErrConflict)
}

func TestLeaveBalanceRepository_UsedDaysNeverGoNegative(t *testing.T) {
	db := openTestDB(t)
	defer cleanupAttendanceData(t, db)
	cleanupAttendanceData(t, db)

	ctx := context.Background()
	employeeID := createTestEmployee(t, ctx, db, "EMP001")
	repo := postgresql.NewLeaveBalanceRepository(db)

	var leaveTypeID string
	err := db.QueryRow(ctx, `
		INSERT INTO leave_types (id, name, code, category, days_allowed_per_year, max_consecutive_days,
			min_notice_days, requires_certificate, carry_forward_allowed, carry_forward_max_days,
			is_active, created_at, updated_at)
		VALUES (gen_random_uuid(), 'Annual Leave', 'ANNUAL', 'ANNUAL', 12, 12, 0, FALSE, FALSE, 0, TRUE, NOW(), NOW())
		RETURNING id
	`).Scan(&leaveTypeID)
	require.NoError(t, err)

	var balanceID string
	err = db.QueryRow(ctx, `
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, allocated_days, used_days, carried_forward, adjustment_days, updated_at)
		VALUES (gen_random_uuid(), $1, $2, 2026, 12, 2, 0, 0, NOW())
		RETURNING id
	`, employeeID, leaveTypeID).Scan(&balanceID)
	require.NoError(t, err)

	require.NoError(t, repo.SubtractUsed(ctx, balanceID, 5))

	balance, err := repo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, 2026)
	require.NoError(t, err)
	assert.Equal(t, 0.0, balance.UsedDays)
}
