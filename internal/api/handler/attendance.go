package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

// AttendanceService interface for the service
type AttendanceService interface {
	CheckIn(ctx context.Context, faceData string) (*domain.AttendanceResult, error)
	CheckOut(ctx context.Context, faceData string) (*domain.AttendanceResult, error)
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

// AttendanceHandler handles check-in, check-out and the dashboard
type AttendanceHandler struct {
	service      AttendanceService
	logger       *slog.Logger
	maxImageSize int
}

func NewAttendanceHandler(service AttendanceService, logger *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service:      service,
		logger:       logger,
		maxImageSize: defaultMaxImageSize,
	}
}

// WithMaxImageSize sets the upload limit for multipart image files.
func (h *AttendanceHandler) WithMaxImageSize(n int) *AttendanceHandler {
	h.maxImageSize = n
	return h
}

// CheckIn POST /v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	return h.record(c, domain.AttendanceIn, h.service.CheckIn)
}

// CheckOut POST /v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	return h.record(c, domain.AttendanceOut, h.service.CheckOut)
}

func (h *AttendanceHandler) record(
	c *fiber.Ctx,
	kind domain.AttendanceType,
	fn func(ctx context.Context, faceData string) (*domain.AttendanceResult, error),
) error {
	var req captureRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	faceData, err := extractFaceData(c, req.FaceData, h.maxImageSize)
	if err != nil {
		return err
	}

	result, err := fn(c.UserContext(), faceData)
	if err != nil {
		return err
	}

	// Rejections are answers, not failures: 200 with accepted=false.
	if result.Record == nil {
		return c.JSON(result)
	}

	h.logger.Debug("attendance created",
		slog.String("type", string(kind)),
		slog.String("record_id", result.Record.ID.String()),
	)

	return c.Status(fiber.StatusCreated).JSON(result)
}

// Dashboard GET /v1/dashboard
func (h *AttendanceHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dashboard)
}
