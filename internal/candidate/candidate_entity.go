package candidate

import (
	"time"

	"gorm.io/gorm"
)

// Status is the candidate workflow state. Hired and Rejected are terminal
// with respect to promotion: later edits to other fields never re-trigger it.
type Status int16

const (
	StatusSubmitted  Status = 1
	StatusProcessing Status = 2
	StatusHired      Status = 3
	StatusRejected   Status = 4
)

func (s Status) Valid() bool {
	return s >= StatusSubmitted && s <= StatusRejected
}

func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "SUBMITTED"
	case StatusProcessing:
		return "PROCESSING"
	case StatusHired:
		return "HIRED"
	case StatusRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Candidate rows are never hard-deleted; gorm.DeletedAt keeps rejected and
// withdrawn applications out of listings while preserving the promotion link.
type Candidate struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Code         string         `gorm:"column:code;type:varchar(50);uniqueIndex:uq_candidate_code"`
	FullName     string         `gorm:"column:full_name;size:255;not null"`
	JobTitleID   int64          `gorm:"column:job_title_id;not null"`
	DepartmentID int64          `gorm:"column:department_id;not null"`
	AppliedAt    time.Time      `gorm:"column:applied_at;type:date;not null"`
	Skills       *string        `gorm:"column:skills;type:text"`
	Status       Status         `gorm:"column:status;type:smallint;not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Candidate) TableName() string {
	return "candidates"
}
