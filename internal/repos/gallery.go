package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
)

type GalleryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.GalleryItem) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.GalleryItem, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.GalleryItem, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error)
}

type galleryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGalleryRepo(db *gorm.DB, baseLog *logger.Logger) GalleryRepo {
	return &galleryRepo{db: db, log: baseLog.With("repo", "GalleryRepo")}
}

func (r *galleryRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *galleryRepo) Create(ctx context.Context, tx *gorm.DB, item *types.GalleryItem) error {
	return r.conn(tx).WithContext(ctx).Create(item).Error
}

func (r *galleryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.GalleryItem, error) {
	var item types.GalleryItem
	if err := r.conn(tx).WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.GalleryItem, int64, error) {
	query := r.conn(tx).WithContext(ctx).Model(&types.GalleryItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.GalleryItem
	if err := query.Order("sort_order ASC, created_at DESC").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *galleryRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.GalleryItem{ID: id}).
		Updates(fields).Error
}

func (r *galleryRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).Delete(&types.GalleryItem{}, id).Error
}

func (r *galleryRepo) Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error) {
	var result []CategoryCount
	err := r.conn(tx).WithContext(ctx).
		Model(&types.GalleryItem{}).
		Select("category AS name, COUNT(id) AS count").
		Where("status = ?", "active").
		Group("category").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
