package employee

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusProbation  = "PROBATION"
	StatusActive     = "ACTIVE"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Code         string `gorm:"column:code;type:varchar(50);uniqueIndex:uq_employee_code"`
	FullName     string `gorm:"column:full_name;size:255;not null"`
	JobTitleID   int64  `gorm:"column:job_title_id;not null"`
	DepartmentID int64  `gorm:"column:department_id;not null"`
	JoinDate     time.Time
	Status       string `gorm:"column:status;type:varchar(20);not null;default:PROBATION"`
	// CandidateID links back to the candidate this employee was promoted
	// from. A partial unique index on the column makes a second promotion
	// of the same candidate impossible at the storage layer.
	CandidateID *int64 `gorm:"column:candidate_id;uniqueIndex:uq_employee_candidate"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// IsActive reports whether the employee may check in.
func (e *Employee) IsActive() bool {
	return e.Status == StatusProbation || e.Status == StatusActive
}
