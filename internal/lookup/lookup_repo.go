package lookup

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=lookup_repo.go -destination=mock/lookup_repo_mock.go -package=mock
type Repository interface {
	FindDepartmentCode(ctx context.Context, id int64) (string, error)
	FindJobTitleCode(ctx context.Context, id int64) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindDepartmentCode(ctx context.Context, id int64) (string, error) {
	var dept Department
	err := r.db.WithContext(ctx).
		Select("code").
		First(&dept, "id = ?", id).Error
	return dept.Code, err
}

func (r *repository) FindJobTitleCode(ctx context.Context, id int64) (string, error) {
	var title JobTitle
	err := r.db.WithContext(ctx).
		Select("code").
		First(&title, "id = ?", id).Error
	return title.Code, err
}
