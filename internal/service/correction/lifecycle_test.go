package correction

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/config"
	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/chronohr/attendance-backend-go/internal/service/attendance"
	holidayService "github.com/chronohr/attendance-backend-go/internal/service/holiday"
	shiftService "github.com/chronohr/attendance-backend-go/internal/service/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	correctionTestDB     *database.DB
	correctionTestDBOnce sync.Once
)

func openCorrectionTestDB(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	correctionTestDBOnce.Do(func() {
		var err error
		correctionTestDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)
	})
	return correctionTestDB
}

func cleanupCorrectionData(t *testing.T, db *database.DB) {
	ctx := context.Background()
	for _, table := range []string{"audit_entries", "attendance_corrections", "attendance_records", "employees"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func newCorrectionTestService(db *database.DB) *Service {
	cfg := config.CalculationConfig{
		WeekendDays:      []time.Weekday{time.Saturday, time.Sunday},
		ReconcileRetries: 3,
	}
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	attendances := attendanceService.NewService(
		cfg,
		recordRepo,
		postgresql.NewPunchLogRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewLeaveRequestRepository(db),
		shiftService.NewResolver(postgresql.NewShiftRepository(db), postgresql.NewShiftAssignmentRepository(db)),
		holidayService.NewService(postgresql.NewHolidayRepository(db)),
	)
	return NewService(db, postgresql.NewCorrectionRepository(db), recordRepo, attendances, postgresql.NewAuditRepository(db))
}

func TestApproveRewritesRecordAndClosesCorrection(t *testing.T) {
	db := openCorrectionTestDB(t)
	defer cleanupCorrectionData(t, db)
	cleanupCorrectionData(t, db)

	ctx := context.Background()

	var employeeID string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (id, employee_code, first_name, last_name, is_active, hire_date, created_at, updated_at)
		VALUES (gen_random_uuid(), 'EMP001', 'Test', 'Employee', TRUE, '2025-01-01', NOW(), NOW())
		RETURNING id
	`).Scan(&employeeID)
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := date.Add(9*time.Hour + 20*time.Minute)
	out := date.Add(17 * time.Hour)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	stored, err := recordRepo.Create(ctx, attendance.Record{
		EmployeeID:   employeeID,
		Date:         date,
		Pairs:        []attendance.TimePair{{In: &in, Out: &out}},
		TotalMinutes: 460,
		WorkMinutes:  460,
		FirstIn:      &in,
		LastOut:      &out,
		Status:       attendance.StatusPresent,
	})
	require.NoError(t, err)

	svc := newCorrectionTestService(db)
	nine := "09:00:00"
	filed, err := svc.Request(ctx, employeeID, correction.CreateCorrectionRequest{
		AttendanceID:  stored.ID,
		Type:          string(correction.TypeTimeAdjustment),
		Reason:        "badge reader ran fast",
		CorrectedData: map[string]*string{"check_in_1": &nine},
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, filed.ID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, correction.StatusApproved, approved.Status)

	// the record was rewritten from the corrected pairs
	rewritten, err := recordRepo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", rewritten.FirstIn.Format("15:04"))
	assert.Equal(t, 480, rewritten.WorkMinutes)
	assert.True(t, rewritten.IsManual)

	// the decision left an audit trail in the same transaction
	var audits int
	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_entries WHERE employee_id = $1`, employeeID).Scan(&audits)
	require.NoError(t, err)
	assert.Equal(t, 1, audits)

	// approving twice bounces
	_, err = svc.Approve(ctx, filed.ID, employeeID)
	assert.ErrorIs(t, err, correction.ErrAlreadyProcessed)
}
