package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
)

type MaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, material *types.Material) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Material, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Material, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error)
	IncrementDownloads(ctx context.Context, tx *gorm.DB, id uint) error
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	return &materialRepo{db: db, log: baseLog.With("repo", "MaterialRepo")}
}

func (r *materialRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *materialRepo) Create(ctx context.Context, tx *gorm.DB, material *types.Material) error {
	return r.conn(tx).WithContext(ctx).Create(material).Error
}

func (r *materialRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Material, error) {
	var material types.Material
	if err := r.conn(tx).WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Material, int64, error) {
	query := r.conn(tx).WithContext(ctx).Model(&types.Material{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materials []*types.Material
	if err := query.Order("sort_order ASC, upload_date DESC").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&materials).Error; err != nil {
		return nil, 0, err
	}
	return materials, total, nil
}

func (r *materialRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Material{ID: id}).
		Updates(fields).Error
}

func (r *materialRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).Delete(&types.Material{}, id).Error
}

func (r *materialRepo) Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error) {
	var result []CategoryCount
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Material{}).
		Select("category AS name, COUNT(id) AS count").
		Where("is_active = ?", true).
		Group("category").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IncrementDownloads bumps the counter in a single UPDATE so concurrent
// downloads cannot lose each other's increment.
func (r *materialRepo) IncrementDownloads(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Material{ID: id}).
		UpdateColumn("downloads", gorm.Expr("downloads + ?", 1)).Error
}
