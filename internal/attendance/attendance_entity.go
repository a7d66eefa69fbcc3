package attendance

import (
	"time"
)

const (
	StatusNotCheckedIn = "NOT_CHECKED_IN"
	StatusPresent      = "PRESENT"
)

// Attendance has at most one row per (employee_id, attendance_date); the
// uq_attendance_employee_date constraint enforces it. Daily seeding inserts a
// NOT_CHECKED_IN placeholder per active employee, and verification flips the
// placeholder to PRESENT with a single conditional UPDATE.
type Attendance struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID     int64      `gorm:"column:employee_id;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time  `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	CheckInAt      *time.Time `gorm:"column:check_in_at;type:timestamptz"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:NOT_CHECKED_IN"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Employee       *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       int64  `gorm:"primaryKey"`
	FullName string `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
