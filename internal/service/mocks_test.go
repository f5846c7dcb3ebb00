package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/codec"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
	"github.com/saturnino-fabrica-de-software/ponto/internal/matcher"
	"github.com/saturnino-fabrica-de-software/ponto/internal/provider"
	"github.com/saturnino-fabrica-de-software/ponto/internal/recognition"
)

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEnrolled(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateEncoding(ctx context.Context, id uuid.UUID, encoding string) error {
	args := m.Called(ctx, id, encoding)
	return args.Error(0)
}

func (m *MockEmployeeRepository) EnrollmentCounts(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListRecent(ctx context.Context, limit int) ([]domain.AttendanceRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) CountByType(ctx context.Context, from, to time.Time) (int, int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, img *codec.Image) ([]provider.Detection, error) {
	args := m.Called(ctx, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.Detection), args.Error(1)
}

func (m *MockExtractor) ChannelOrder() codec.ChannelOrder {
	return codec.RGB
}

func (m *MockExtractor) Dimension() int {
	return 2
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func testRecognizer(t *testing.T, ex provider.Extractor, src recognition.EmployeeSource) *recognition.Recognizer {
	t.Helper()

	m, err := matcher.New(matcher.Euclidean{}, matcher.DefaultTolerance)
	require.NoError(t, err)

	r, err := recognition.New(ex, src, m, recognition.DefaultOptions(), testLogger())
	require.NoError(t, err)
	return r
}

func testCapture(t *testing.T) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := 0; i < 9; i++ {
		img.Set(i%3, i/3, color.NRGBA{R: uint8(i * 20), G: 90, B: 10, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func face(e domain.Embedding) []provider.Detection {
	return []provider.Detection{{
		BoundingBox: provider.BoundingBox{Width: 2, Height: 2},
		Confidence:  0.99,
		Embedding:   e,
	}}
}

func enrolled(first, last, encoding string) domain.Employee {
	return domain.Employee{
		ID:           uuid.New(),
		FirstName:    first,
		LastName:     last,
		Position:     "Engineer",
		FaceEncoding: &encoding,
	}
}
