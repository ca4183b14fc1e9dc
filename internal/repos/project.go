package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
)

type ProjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, project *types.Project) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Project, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Project, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *projectRepo) Create(ctx context.Context, tx *gorm.DB, project *types.Project) error {
	return r.conn(tx).WithContext(ctx).Create(project).Error
}

func (r *projectRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Project, error) {
	var project types.Project
	if err := r.conn(tx).WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Project, int64, error) {
	query := r.conn(tx).WithContext(ctx).Model(&types.Project{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*types.Project
	if err := query.Order("sort_order ASC, created_at DESC").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

func (r *projectRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Project{ID: id}).
		Updates(fields).Error
}

func (r *projectRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).Delete(&types.Project{}, id).Error
}

func (r *projectRepo) Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error) {
	var result []CategoryCount
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Project{}).
		Select("category AS name, COUNT(id) AS count").
		Where("status = ?", "active").
		Group("category").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
