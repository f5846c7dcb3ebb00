package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/ponto/internal/audit"
	"github.com/saturnino-fabrica-de-software/ponto/internal/domain"
)

type recordingAudit struct {
	events []audit.Event
}

func (r *recordingAudit) Log(_ context.Context, event audit.Event) error {
	r.events = append(r.events, event)
	return nil
}

func TestAttendanceService_AuditsEveryAttempt(t *testing.T) {
	alice := enrolled("Alice", "Smith", "[0,0]")

	er := new(MockEmployeeRepository)
	ar := new(MockAttendanceRepository)
	ex := new(MockExtractor)

	er.On("ListEnrolled", mock.Anything).Return([]domain.Employee{alice}, nil)
	er.On("GetByID", mock.Anything, alice.ID).Return(&alice, nil)
	ar.On("Create", mock.Anything, mock.Anything).Return(nil)
	ex.On("Extract", mock.Anything, mock.Anything).Return(face(domain.Embedding{0.1, 0}), nil).Once()
	ex.On("Extract", mock.Anything, mock.Anything).Return(face(domain.Embedding{5, 5}), nil).Once()

	rec := &recordingAudit{}
	svc := NewAttendanceService(er, ar, testRecognizer(t, ex, er), testLogger()).WithAudit(rec)

	_, err := svc.CheckIn(context.Background(), testCapture(t))
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), testCapture(t))
	require.NoError(t, err)

	require.Len(t, rec.events, 2)

	accepted := rec.events[0]
	assert.Equal(t, audit.EventFaceRecognized, accepted.EventType)
	assert.True(t, accepted.Success)
	require.NotNil(t, accepted.EmployeeID)
	assert.Equal(t, alice.ID, *accepted.EmployeeID)
	assert.Equal(t, "IN", accepted.AttendanceType)
	assert.Equal(t, string(domain.OutcomeMatched), accepted.Outcome)

	rejected := rec.events[1]
	assert.False(t, rejected.Success)
	assert.Nil(t, rejected.EmployeeID)
	assert.Equal(t, "OUT", rejected.AttendanceType)
	assert.Equal(t, string(domain.OutcomeNoMatchWithinTolerance), rejected.Outcome)
}

func TestEmployeeService_AuditsEnrollment(t *testing.T) {
	alice := enrolled("Alice", "Smith", "[0,0]")

	t.Run("success carries the new id", func(t *testing.T) {
		er := new(MockEmployeeRepository)
		ex := new(MockExtractor)
		er.On("ListEnrolled", mock.Anything).Return([]domain.Employee{alice}, nil)
		er.On("Create", mock.Anything, mock.Anything).Return(nil)
		ex.On("Extract", mock.Anything, mock.Anything).Return(face(domain.Embedding{1, 0}), nil)

		rec := &recordingAudit{}
		svc := NewEmployeeService(er, testRecognizer(t, ex, er), testLogger()).WithAudit(rec)

		employee, err := svc.Enroll(context.Background(), EnrollInput{
			FirstName: "Bob", LastName: "Jones", Position: "Manager", FaceData: testCapture(t),
		})
		require.NoError(t, err)

		require.Len(t, rec.events, 1)
		assert.Equal(t, audit.EventEmployeeEnrolled, rec.events[0].EventType)
		assert.True(t, rec.events[0].Success)
		require.NotNil(t, rec.events[0].EmployeeID)
		assert.Equal(t, employee.ID, *rec.events[0].EmployeeID)
	})

	t.Run("duplicate face is audited as failure", func(t *testing.T) {
		er := new(MockEmployeeRepository)
		ex := new(MockExtractor)
		er.On("ListEnrolled", mock.Anything).Return([]domain.Employee{alice}, nil)
		ex.On("Extract", mock.Anything, mock.Anything).Return(face(domain.Embedding{0.05, 0}), nil)

		rec := &recordingAudit{}
		svc := NewEmployeeService(er, testRecognizer(t, ex, er), testLogger()).WithAudit(rec)

		_, err := svc.Enroll(context.Background(), EnrollInput{
			FirstName: "Eve", LastName: "Twin", Position: "Engineer", FaceData: testCapture(t),
		})
		require.ErrorIs(t, err, domain.ErrFaceBiometricExists)

		require.Len(t, rec.events, 1)
		assert.False(t, rec.events[0].Success)
		assert.Nil(t, rec.events[0].EmployeeID)
		assert.Contains(t, rec.events[0].Error, "already enrolled")
	})
}
