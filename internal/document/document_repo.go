package document

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, doc *Document) error
	FindByCandidateID(ctx context.Context, candidateID int64) ([]Document, error)
	UpdateCode(ctx context.Context, id int64, code string) error
	ReassignOwner(ctx context.Context, candidateID, employeeID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, doc *Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) FindByCandidateID(ctx context.Context, candidateID int64) ([]Document, error) {
	var docs []Document
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at ASC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) UpdateCode(ctx context.Context, id int64, code string) error {
	return r.db.WithContext(ctx).
		Model(&Document{}).
		Where("id = ?", id).
		Update("code", code).Error
}

// ReassignOwner flips ownership of every document held by the candidate to
// the employee in one statement. It is only ever called inside the promotion
// transaction.
func (r *repository) ReassignOwner(ctx context.Context, candidateID, employeeID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Document{}).
		Where("candidate_id = ?", candidateID).
		Updates(map[string]interface{}{
			"candidate_id": nil,
			"employee_id":  employeeID,
			"updated_at":   time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
