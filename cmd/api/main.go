package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/config"
	appHTTP "github.com/chronohr/attendance-backend-go/internal/handler/http"
	"github.com/chronohr/attendance-backend-go/internal/pkg/cron"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/chronohr/attendance-backend-go/internal/service/attendance"
	correctionService "github.com/chronohr/attendance-backend-go/internal/service/correction"
	holidayService "github.com/chronohr/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/chronohr/attendance-backend-go/internal/service/leave"
	shiftService "github.com/chronohr/attendance-backend-go/internal/service/shift"
	summaryService "github.com/chronohr/attendance-backend-go/internal/service/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	punchLogRepo := postgresql.NewPunchLogRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	deviceRepo := postgresql.NewDeviceRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	holidaySvc := holidayService.NewService(holidayRepo)
	shiftResolver := shiftService.NewResolver(shiftRepo, assignmentRepo)
	shiftSvc := shiftService.NewService(shiftRepo, assignmentRepo)
	attendanceSvc := attendanceService.NewService(
		cfg.Calculation,
		recordRepo,
		punchLogRepo,
		employeeRepo,
		leaveRequestRepo,
		shiftResolver,
		holidaySvc,
	)
	leaveSvc := leaveService.NewService(db, leaveTypeRepo, leaveBalanceRepo, leaveRequestRepo, auditRepo, holidaySvc)
	correctionSvc := correctionService.NewService(db, correctionRepo, recordRepo, attendanceSvc, auditRepo)
	summarySvc := summaryService.NewService(cfg.Calculation, summaryRepo, recordRepo, employeeRepo, holidaySvc)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("process_pending_punches", cfg.Calculation.PunchProcessInterval, func(ctx context.Context) error {
		return attendanceSvc.ProcessPendingPunches(ctx)
	})
	scheduler.AddJob("regenerate_previous_month_summaries", 24*time.Hour, func(ctx context.Context) error {
		now := time.Now().UTC()
		previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		_, err := summarySvc.GenerateAll(ctx, previous.Year(), int(previous.Month()))
		return err
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, deviceRepo, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Correction: appHTTP.NewCorrectionHandler(correctionSvc),
		Summary:    appHTTP.NewSummaryHandler(summarySvc),
		Shift:      appHTTP.NewShiftHandler(shiftSvc, shiftResolver),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
