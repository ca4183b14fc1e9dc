package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
)

type ApplicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, application *types.Application) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Application, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Application, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type applicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
	return &applicationRepo{db: db, log: baseLog.With("repo", "ApplicationRepo")}
}

func (r *applicationRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *applicationRepo) Create(ctx context.Context, tx *gorm.DB, application *types.Application) error {
	return r.conn(tx).WithContext(ctx).Create(application).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Application, error) {
	var application types.Application
	if err := r.conn(tx).WithContext(ctx).First(&application, id).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Application, int64, error) {
	query := r.conn(tx).WithContext(ctx).Model(&types.Application{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []*types.Application
	if err := query.Order("created_at DESC").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

func (r *applicationRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Application{ID: id}).
		Updates(fields).Error
}

func (r *applicationRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).Delete(&types.Application{}, id).Error
}
