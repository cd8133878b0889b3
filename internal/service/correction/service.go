package correction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/attendance"
	"github.com/chronohr/attendance-backend-go/internal/domain/audit"
	"github.com/chronohr/attendance-backend-go/internal/domain/correction"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/chronohr/attendance-backend-go/internal/service/attendance"
	"github.com/jackc/pgx/v5"
)

// Service owns the correction lifecycle. Corrections are the only path for
// manual edits of attendance records; approval replays the edited fields
// through the calculator so derived metrics can never drift from the pairs.
type Service struct {
	db *database.DB
	correction.Repository
	records     attendance.RecordRepository
	attendances *attendanceService.Service
	audits      audit.Repository
}

func NewService(
	db *database.DB,
	repo correction.Repository,
	recordRepo attendance.RecordRepository,
	attendances *attendanceService.Service,
	audits audit.Repository,
) *Service {
	return &Service{
		db:          db,
		Repository:  repo,
		records:     recordRepo,
		attendances: attendances,
		audits:      audits,
	}
}

// Request files a correction in PENDING state. The original field values are
// snapshotted here, exactly once; later record changes do not touch them.
func (s *Service) Request(ctx context.Context, requesterID string, req correction.CreateCorrectionRequest) (correction.Correction, error) {
	if err := req.Validate(); err != nil {
		return correction.Correction{}, err
	}

	record, err := s.records.GetByID(ctx, req.AttendanceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Correction{}, attendance.ErrRecordNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	created, err := s.Repository.Create(ctx, correction.Correction{
		AttendanceID:  record.ID,
		Type:          correction.CorrectionType(req.Type),
		Reason:        req.Reason,
		OriginalData:  snapshotRecord(record),
		CorrectedData: req.Diff(),
		RequestedBy:   requesterID,
		RequestedAt:   time.Now().UTC(),
		Status:        correction.StatusPending,
	})
	if err != nil {
		return correction.Correction{}, fmt.Errorf("failed to create correction: %w", err)
	}

	return created, nil
}

// Approve applies a PENDING correction: the diff is merged over the record's
// current pairs, every derived field is recomputed and the record is updated
// under its version guard. The correction itself then becomes APPROVED.
func (s *Service) Approve(ctx context.Context, correctionID, approverID string) (correction.Correction, error) {
	c, err := s.get(ctx, correctionID)
	if err != nil {
		return correction.Correction{}, err
	}
	if c.Status != correction.StatusPending {
		return correction.Correction{}, correction.ErrAlreadyProcessed
	}

	record, err := s.records.GetByID(ctx, c.AttendanceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// record vanished underneath the correction; keep it PENDING so a
			// reviewer can see what happened
			return correction.Correction{}, correction.ErrStaleReference
		}
		return correction.Correction{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	pairs, notes, err := applyDiff(record, c.CorrectedData)
	if err != nil {
		return correction.Correction{}, err
	}

	record.Notes = notes
	record.IsManual = true

	now := time.Now().UTC()

	// record rewrite, status flip and audit land or roll back together
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		updated, err := s.attendances.Recalculate(txCtx, record, pairs)
		if err != nil {
			return err
		}

		if err := s.Repository.UpdateStatus(txCtx, c.ID, correction.StatusApproved, approverID, now, nil); err != nil {
			return fmt.Errorf("failed to approve correction: %w", err)
		}

		return s.audits.Create(txCtx, audit.Entry{
			ActorID:    approverID,
			Action:     audit.ActionCorrectionApproved,
			EmployeeID: updated.EmployeeID,
			Date:       updated.Date,
			Details: audit.Details{
				"correction_id":  c.ID,
				"attendance_id":  c.AttendanceID,
				"original_data":  c.OriginalData,
				"corrected_data": c.CorrectedData,
				"new_status":     string(updated.Status),
			},
		})
	})
	if err != nil {
		return correction.Correction{}, err
	}

	return s.get(ctx, correctionID)
}

// Reject declines a PENDING correction; the record is untouched.
func (s *Service) Reject(ctx context.Context, correctionID, approverID string, req correction.RejectCorrectionRequest) (correction.Correction, error) {
	if err := req.Validate(); err != nil {
		return correction.Correction{}, err
	}

	c, err := s.get(ctx, correctionID)
	if err != nil {
		return correction.Correction{}, err
	}
	if c.Status != correction.StatusPending {
		return correction.Correction{}, correction.ErrAlreadyProcessed
	}

	now := time.Now().UTC()
	if err := s.Repository.UpdateStatus(ctx, c.ID, correction.StatusRejected, approverID, now, &req.Reason); err != nil {
		return correction.Correction{}, fmt.Errorf("failed to reject correction: %w", err)
	}

	if err := s.audits.Create(ctx, audit.Entry{
		ActorID: approverID,
		Action:  audit.ActionCorrectionRejected,
		Date:    now,
		Details: audit.Details{"correction_id": c.ID, "reason": req.Reason},
	}); err != nil {
		return correction.Correction{}, fmt.Errorf("failed to write audit entry: %w", err)
	}

	return s.get(ctx, correctionID)
}

// GetCorrection fetches one correction by ID.
func (s *Service) GetCorrection(ctx context.Context, correctionID string) (correction.Correction, error) {
	return s.get(ctx, correctionID)
}

// ListByAttendance lists the correction history of one record.
func (s *Service) ListByAttendance(ctx context.Context, attendanceID string) ([]correction.Correction, error) {
	return s.Repository.ListByAttendance(ctx, attendanceID)
}

// ListPending lists corrections awaiting a decision.
func (s *Service) ListPending(ctx context.Context, limit int) ([]correction.Correction, error) {
	return s.Repository.ListByStatus(ctx, correction.StatusPending, limit)
}

func (s *Service) get(ctx context.Context, correctionID string) (correction.Correction, error) {
	c, err := s.Repository.GetByID(ctx, correctionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to get correction: %w", err)
	}
	return c, nil
}

// snapshotRecord captures the mutable fields of a record as a FieldDiff.
func snapshotRecord(record attendance.Record) correction.FieldDiff {
	snapshot := make(correction.FieldDiff, len(correction.KnownFields))
	for i := 0; i < attendance.MaxPairs; i++ {
		inField, outField := correction.PairFields(i)
		if i < len(record.Pairs) {
			snapshot[inField] = clockString(record.Pairs[i].In)
			snapshot[outField] = clockString(record.Pairs[i].Out)
		} else {
			snapshot[inField] = nil
			snapshot[outField] = nil
		}
	}
	snapshot[correction.FieldNotes] = record.Notes
	return snapshot
}

// applyDiff merges the corrected fields over the record's current values and
// returns the resulting pairs and notes.
func applyDiff(record attendance.Record, diff correction.FieldDiff) ([]attendance.TimePair, *string, error) {
	clocks := make([][2]*string, attendance.MaxPairs)
	for i := 0; i < attendance.MaxPairs; i++ {
		if i < len(record.Pairs) {
			clocks[i][0] = clockString(record.Pairs[i].In)
			clocks[i][1] = clockString(record.Pairs[i].Out)
		}
	}

	notes := record.Notes
	for field, value := range diff {
		if field == correction.FieldNotes {
			notes = value
			continue
		}
		for i := 0; i < attendance.MaxPairs; i++ {
			inField, outField := correction.PairFields(i)
			if field == inField {
				clocks[i][0] = value
			}
			if field == outField {
				clocks[i][1] = value
			}
		}
	}

	pairs, err := attendanceService.PairsFromClockTimes(record.Date, clocks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse corrected times: %w", err)
	}
	return pairs, notes, nil
}

func clockString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}
