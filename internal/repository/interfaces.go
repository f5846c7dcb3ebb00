package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// EmployeeRepositoryInterface defines operations for employee data access
type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	ListEnrolled(ctx context.Context) ([]domain.Employee, error)
	UpdateEncoding(ctx context.Context, id uuid.UUID, encoding string) error
	EnrollmentCounts(ctx context.Context) (total int, enrolled int, err error)
}

// AttendanceRepositoryInterface defines operations for attendance data access
type AttendanceRepositoryInterface interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.AttendanceRecord, error)
	CountByType(ctx context.Context, from, to time.Time) (checkIns int, checkOuts int, err error)
}

var (
	_ EmployeeRepositoryInterface   = (*EmployeeRepository)(nil)
	_ AttendanceRepositoryInterface = (*AttendanceRepository)(nil)
)
