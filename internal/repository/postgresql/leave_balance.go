package postgresql

import (
	"context"
	"fmt"

	"github.com/chronohr/attendance-backend-go/internal/domain/leave"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

const leaveBalanceColumns = `id, employee_id, leave_type_id, year,
	allocated_days, used_days, carried_forward, adjustment_days, updated_at`

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3`

	return scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
}

// GetForUpdate implements leave.BalanceRepository. The row lock is held until
// the surrounding transaction commits or rolls back.
func (r *leaveBalanceRepository) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
		FOR UPDATE`

	return scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
}

// AddUsed implements leave.BalanceRepository.
func (r *leaveBalanceRepository) AddUsed(ctx context.Context, id string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_balances SET used_days = used_days + $1, updated_at = NOW() WHERE id = $2`

	if _, err := q.Exec(ctx, query, days, id); err != nil {
		return fmt.Errorf("failed to add used days: %w", err)
	}

	return nil
}

// SubtractUsed implements leave.BalanceRepository. Used days never go below
// zero, matching the restore semantics of cancellations.
func (r *leaveBalanceRepository) SubtractUsed(ctx context.Context, id string, days float64) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_balances SET used_days = GREATEST(0, used_days - $1), updated_at = NOW() WHERE id = $2`

	if _, err := q.Exec(ctx, query, days, id); err != nil {
		return fmt.Errorf("failed to subtract used days: %w", err)
	}

	return nil
}

// ListByEmployee implements leave.BalanceRepository.
func (r *leaveBalanceRepository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type_id`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		balance, err := scanLeaveBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave balances: %w", err)
	}

	return balances, nil
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func scanLeaveBalance(row rowScanner) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.AllocatedDays, &b.UsedDays, &b.CarriedForward, &b.AdjustmentDays, &b.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, err
	}
	return b, nil
}
