package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func (r *AttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, employee_id, attendance_type, confidence, timestamp)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING timestamp
	`

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		string(record.Type),
		record.Confidence,
	).Scan(&record.Timestamp)
	if err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}

	return nil
}

// ListRecent returns the newest records first, with the employee display name.
func (r *AttendanceRepository) ListRecent(ctx context.Context, limit int) ([]domain.AttendanceRecord, error) {
	query := `
		SELECT a.id, a.employee_id, e.first_name, e.last_name, a.attendance_type, a.confidence, a.timestamp
		FROM attendance_records a
		INNER JOIN employees e ON e.id = a.employee_id
		ORDER BY a.timestamp DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent attendance: %w", err)
	}
	defer rows.Close()

	records := make([]domain.AttendanceRecord, 0, limit)
	for rows.Next() {
		var (
			rec         domain.AttendanceRecord
			first, last string
			kind        string
		)
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &first, &last, &kind, &rec.Confidence, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		rec.EmployeeName = (&domain.Employee{FirstName: first, LastName: last}).FullName()
		rec.Type = domain.AttendanceType(kind)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent attendance: %w", err)
	}

	return records, nil
}

// CountByType counts check-ins and check-outs with from <= timestamp < to.
func (r *AttendanceRepository) CountByType(ctx context.Context, from, to time.Time) (int, int, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE attendance_type = 'IN'),
		       COUNT(*) FILTER (WHERE attendance_type = 'OUT')
		FROM attendance_records
		WHERE timestamp >= $1 AND timestamp < $2
	`

	var checkIns, checkOuts int
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&checkIns, &checkOuts); err != nil {
		return 0, 0, fmt.Errorf("count attendance by type: %w", err)
	}

	return checkIns, checkOuts, nil
}
