package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceType distinguishes check-in from check-out events.
type AttendanceType string

const (
	AttendanceIn  AttendanceType = "IN"
	AttendanceOut AttendanceType = "OUT"
)

// IsValid reports whether t is a known attendance type.
func (t AttendanceType) IsValid() bool {
	return t == AttendanceIn || t == AttendanceOut
}

// AttendanceRecord representa um registro de entrada/saída
type AttendanceRecord struct {
	ID           uuid.UUID      `json:"id"`
	EmployeeID   uuid.UUID      `json:"employee_id"`
	EmployeeName string         `json:"employee_name,omitempty"`
	Type         AttendanceType `json:"attendance_type"`
	Confidence   float64        `json:"confidence"`
	Timestamp    time.Time      `json:"timestamp"`
}

// AttendanceResult pairs the recognition outcome with the persisted record.
// Record is nil when the match was not accepted.
type AttendanceResult struct {
	Match  *MatchResult      `json:"match"`
	Record *AttendanceRecord `json:"record,omitempty"`
}

// Dashboard summarises the attendance activity of one day.
type Dashboard struct {
	Date             time.Time          `json:"date"`
	TotalEmployees   int                `json:"total_employees"`
	TodayCheckIns    int                `json:"today_checkins"`
	TodayCheckOuts   int                `json:"today_checkouts"`
	RecentAttendance []AttendanceRecord `json:"recent_attendance"`
}
