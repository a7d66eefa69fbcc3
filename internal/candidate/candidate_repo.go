package candidate

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=candidate_repo.go -destination=mock/candidate_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, cand *Candidate) error
	FindByID(ctx context.Context, id int64) (*Candidate, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*Candidate, error)
	FindAll(ctx context.Context) ([]Candidate, error)
	Update(ctx context.Context, cand *Candidate) error
	UpdateCode(ctx context.Context, id int64, code string) error
	Delete(ctx context.Context, id int64) error
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

func (r *repository) Create(ctx context.Context, cand *Candidate) error {
	return r.db.WithContext(ctx).Create(cand).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Candidate, error) {
	var cand Candidate
	err := r.db.WithContext(ctx).
		First(&cand, "id = ?", id).Error
	return &cand, err
}

// FindByIDForUpdate takes a row lock so concurrent promotions of the same
// candidate serialize on the candidate row.
func (r *repository) FindByIDForUpdate(ctx context.Context, id int64) (*Candidate, error) {
	var cand Candidate
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cand, "id = ?", id).Error
	return &cand, err
}

func (r *repository) FindAll(ctx context.Context) ([]Candidate, error) {
	var cands []Candidate
	err := r.db.WithContext(ctx).
		Order("applied_at DESC, id DESC").
		Find(&cands).Error
	return cands, err
}

func (r *repository) Update(ctx context.Context, cand *Candidate) error {
	return r.db.WithContext(ctx).Save(cand).Error
}

func (r *repository) UpdateCode(ctx context.Context, id int64, code string) error {
	return r.db.WithContext(ctx).
		Model(&Candidate{}).
		Where("id = ?", id).
		Update("code", code).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Delete(&Candidate{}, "id = ?", id).Error
}
