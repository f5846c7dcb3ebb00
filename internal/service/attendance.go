package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/saturnino-fabrica-de-software/ponto/internal/audit"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/recognition"
)

const recentAttendanceLimit = 10

type AttendanceService struct {
	employees  EmployeeRepositoryInterface
	attendance AttendanceRepositoryInterface
	recognizer *recognition.Recognizer
	audit      audit.Logger
	logger     *slog.Logger
	now        func() time.Time
}

func NewAttendanceService(
	employees EmployeeRepositoryInterface,
	attendance AttendanceRepositoryInterface,
	recognizer *recognition.Recognizer,
	logger *slog.Logger,
) *AttendanceService {
	return &AttendanceService{
		employees:  employees,
		attendance: attendance,
		recognizer: recognizer,
		audit:      &audit.NoOpLogger{},
		logger:     logger,
		now:        time.Now,
	}
}

// WithAudit sets the logger that receives one event per recognition attempt.
func (s *AttendanceService) WithAudit(l audit.Logger) *AttendanceService {
	s.audit = l
	return s
}

// WithClock overrides the time source used by Dashboard.
func (s *AttendanceService) WithClock(now func() time.Time) *AttendanceService {
	s.now = now
	return s
}

func (s *AttendanceService) CheckIn(ctx context.Context, faceData string) (*domain.AttendanceResult, error) {
	return s.Record(ctx, faceData, domain.AttendanceIn)
}

func (s *AttendanceService) CheckOut(ctx context.Context, faceData string) (*domain.AttendanceResult, error) {
	return s.Record(ctx, faceData, domain.AttendanceOut)
}

// Record recognizes the capture and, when the match is accepted, persists an
// attendance record. A rejected match is returned without a record.
func (s *AttendanceService) Record(ctx context.Context, faceData string, kind domain.AttendanceType) (*domain.AttendanceResult, error) {
	if !kind.IsValid() {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("invalid attendance type: %q", kind))
	}

	match, err := s.recognizer.NewSession().Recognize(ctx, faceData)
	if err != nil {
		return nil, err
	}

	event := audit.Event{
		EventType:      audit.EventFaceRecognized,
		EmployeeID:     match.EmployeeID,
		AttendanceType: string(kind),
		Outcome:        string(match.Outcome),
		Confidence:     match.Confidence,
		Success:        match.Accepted,
	}
	if err := s.audit.Log(ctx, event); err != nil {
		s.logger.Warn("audit log failed", slog.Any("error", err))
	}

	if !match.Accepted {
		s.logger.Info("attendance rejected",
			slog.String("type", string(kind)),
			slog.String("outcome", string(match.Outcome)),
			slog.String("reason", match.Reason),
		)
		return &domain.AttendanceResult{Match: match}, nil
	}

	record := &domain.AttendanceRecord{
		EmployeeID:   *match.EmployeeID,
		EmployeeName: match.Identity,
		Type:         kind,
		Confidence:   match.Confidence,
	}

	if err := s.attendance.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("attendance recorded",
		slog.String("employee_id", record.EmployeeID.String()),
		slog.String("type", string(kind)),
		slog.Float64("confidence", record.Confidence),
	)

	return &domain.AttendanceResult{Match: match, Record: record}, nil
}

// Dashboard resume o dia corrente: entradas, saídas e registros recentes
func (s *AttendanceService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	checkIns, checkOuts, err := s.attendance.CountByType(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	total, _, err := s.employees.EnrollmentCounts(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.attendance.ListRecent(ctx, recentAttendanceLimit)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		Date:             dayStart,
		TotalEmployees:   total,
		TodayCheckIns:    checkIns,
		TodayCheckOuts:   checkOuts,
		RecentAttendance: recent,
	}, nil
}
