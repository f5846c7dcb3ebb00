package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/service"
)

// EmployeeService interface for the service
type EmployeeService interface {
	Enroll(ctx context.Context, in service.EnrollInput) (*domain.Employee, error)
	ReEnroll(ctx context.Context, id uuid.UUID, faceData string) (*domain.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	TrainingStatus(ctx context.Context) (*domain.EnrollmentStatus, error)
}

// EmployeeHandler handles employee enrollment and listing
type EmployeeHandler struct {
	service      EmployeeService
	logger       *slog.Logger
	maxImageSize int
}

func NewEmployeeHandler(service EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service:      service,
		logger:       logger,
		maxImageSize: defaultMaxImageSize,
	}
}

func (h *EmployeeHandler) WithMaxImageSize(n int) *EmployeeHandler {
	h.maxImageSize = n
	return h
}

// EnrollRequest body for the enroll endpoint
type EnrollRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Position  string `json:"position" form:"position"`
	FaceData  string `json:"face_data" form:"face_data"`
}

// EmployeeResponse never exposes the stored encoding, only whether one exists.
type EmployeeResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position"`
	Enrolled  bool   `json:"enrolled"`
	CreatedAt string `json:"created_at"`
}

// ListEmployeesResponse response for the list endpoint
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int                `json:"total"`
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID.String(),
		FirstName: e.FirstName,
		LastName:  e.LastName,
		FullName:  e.FullName(),
		Position:  e.Position,
		Enrolled:  e.IsEnrolled(),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Enroll POST /v1/employees - register a new employee with a face capture
func (h *EmployeeHandler) Enroll(c *fiber.Ctx) error {
	var req EnrollRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	faceData, err := extractFaceData(c, req.FaceData, h.maxImageSize)
	if err != nil {
		return err
	}

	employee, err := h.service.Enroll(c.UserContext(), service.EnrollInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		FaceData:  faceData,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toEmployeeResponse(employee))
}

// ReEnroll PUT /v1/employees/:id/face - replace the stored face encoding
func (h *EmployeeHandler) ReEnroll(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	var req captureRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	faceData, err := extractFaceData(c, req.FaceData, h.maxImageSize)
	if err != nil {
		return err
	}

	employee, err := h.service.ReEnroll(c.UserContext(), id, faceData)
	if err != nil {
		return err
	}

	return c.JSON(toEmployeeResponse(employee))
}

// Get GET /v1/employees/:id
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseEmployeeID(c)
	if err != nil {
		return err
	}

	employee, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(toEmployeeResponse(employee))
}

// List GET /v1/employees
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}

	resp := ListEmployeesResponse{
		Employees: make([]EmployeeResponse, 0, len(employees)),
		Total:     len(employees),
	}
	for i := range employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(&employees[i]))
	}

	return c.JSON(resp)
}

// TrainingStatus GET /v1/training
func (h *EmployeeHandler) TrainingStatus(c *fiber.Ctx) error {
	status, err := h.service.TrainingStatus(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(status)
}

func parseEmployeeID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, domain.ErrValidationFailed.WithError(errors.New("invalid employee id"))
	}
	return id, nil
}
