package document

import (
	"time"

	"gorm.io/gorm"
)

// Document is an attachment record owned by exactly one of a candidate or an
// employee. The chk_document_single_owner constraint in the schema keeps the
// two owner columns mutually exclusive; promotion flips ownership in a single
// UPDATE so no intermediate two-owner or zero-owner state ever exists.
type Document struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Code        string  `gorm:"column:code;type:varchar(50);uniqueIndex:uq_document_code"`
	CandidateID *int64  `gorm:"column:candidate_id;index"`
	EmployeeID  *int64  `gorm:"column:employee_id;index"`
	FileURL     string  `gorm:"column:file_url;type:text;not null"`
	Notes       *string `gorm:"column:notes;type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
