package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/audit"
	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/recognition"
)

// EnrollInput carries the fields of a new employee plus the face capture.
type EnrollInput struct {
	FirstName string
	LastName  string
	Position  string
	FaceData  string
}

type EmployeeService struct {
	employees  EmployeeRepositoryInterface
	recognizer *recognition.Recognizer
	audit      audit.Logger
	logger     *slog.Logger
}

func NewEmployeeService(
	employees EmployeeRepositoryInterface,
	recognizer *recognition.Recognizer,
	logger *slog.Logger,
) *EmployeeService {
	return &EmployeeService{
		employees:  employees,
		recognizer: recognizer,
		audit:      &audit.NoOpLogger{},
		logger:     logger,
	}
}

// WithAudit sets the logger that receives one event per biometric enrollment.
func (s *EmployeeService) WithAudit(l audit.Logger) *EmployeeService {
	s.audit = l
	return s
}

// Enroll registers a new employee with a face encoding. A face that already
// matches an enrolled employee within tolerance is refused.
func (s *EmployeeService) Enroll(ctx context.Context, in EnrollInput) (*domain.Employee, error) {
	employee := &domain.Employee{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Position:  strings.TrimSpace(in.Position),
	}

	if err := employee.Validate(); err != nil {
		return nil, domain.ErrValidationFailed.WithError(err)
	}

	if strings.TrimSpace(in.FaceData) == "" {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("face_data is required"))
	}

	encoding, err := s.encodeUnique(ctx, in.FaceData)
	if err != nil {
		s.record(ctx, audit.EventEmployeeEnrolled, nil, err)
		return nil, err
	}
	employee.FaceEncoding = &encoding

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	s.record(ctx, audit.EventEmployeeEnrolled, &employee.ID, nil)

	s.logger.Info("employee enrolled",
		slog.String("employee_id", employee.ID.String()),
		slog.String("name", employee.FullName()),
	)

	return employee, nil
}

// ReEnroll replaces the stored encoding of an existing employee. The
// employee's own previous encoding does not count as a duplicate.
func (s *EmployeeService) ReEnroll(ctx context.Context, id uuid.UUID, faceData string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(faceData) == "" {
		return nil, domain.ErrValidationFailed.WithError(fmt.Errorf("face_data is required"))
	}

	encoding, err := s.encodeUnique(ctx, faceData, id)
	if err != nil {
		s.record(ctx, audit.EventFaceReEnrolled, &id, err)
		return nil, err
	}

	if err := s.employees.UpdateEncoding(ctx, id, encoding); err != nil {
		return nil, err
	}
	s.record(ctx, audit.EventFaceReEnrolled, &id, nil)
	employee.FaceEncoding = &encoding

	s.logger.Info("employee re-enrolled", slog.String("employee_id", id.String()))

	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

// TrainingStatus reports how many employees are enrolled and how many of the
// stored encodings actually load into a gallery.
func (s *EmployeeService) TrainingStatus(ctx context.Context) (*domain.EnrollmentStatus, error) {
	total, enrolled, err := s.employees.EnrollmentCounts(ctx)
	if err != nil {
		return nil, err
	}

	g, err := s.recognizer.NewSession().Gallery(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.EnrollmentStatus{
		TotalEmployees: total,
		Enrolled:       enrolled,
		NotEnrolled:    total - enrolled,
		Loadable:       g.Len(),
		Corrupt:        g.Skipped(),
	}, nil
}

func (s *EmployeeService) encodeUnique(ctx context.Context, faceData string, exclude ...uuid.UUID) (string, error) {
	session := s.recognizer.NewSession()

	probe, err := session.Embed(ctx, faceData)
	if err != nil {
		return "", err
	}

	match, err := session.Identify(ctx, probe, exclude...)
	if err != nil {
		return "", err
	}
	if match.Matched {
		s.logger.Warn("duplicate face on enrollment",
			slog.String("existing_employee_id", match.Candidate.Entry.EmployeeID.String()),
			slog.Float64("distance", match.Candidate.Distance),
		)
		return "", domain.ErrFaceBiometricExists
	}

	encoding, err := codec.SerializeEmbedding(probe)
	if err != nil {
		return "", domain.ErrInternal.WithError(err)
	}

	return encoding, nil
}

func (s *EmployeeService) record(ctx context.Context, eventType audit.EventType, employeeID *uuid.UUID, cause error) {
	event := audit.Event{
		EventType:  eventType,
		EmployeeID: employeeID,
		Success:    cause == nil,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	if err := s.audit.Log(ctx, event); err != nil {
		s.logger.Warn("audit log failed", slog.Any("error", err))
	}
}
