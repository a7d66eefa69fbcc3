package events

import "time"

const (
	AttendanceTopic       = "hr.attendance.checkin.v1"
	AttendanceCheckedType = "attendance_checked_in"
)

type AttendanceCheckedInEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID int64     `json:"employee_id"`
	Date       string    `json:"date"`
	CheckedAt  time.Time `json:"checked_at"`
}
