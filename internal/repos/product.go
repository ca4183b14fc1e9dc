package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/types"
)

type ProductRepo interface {
	Create(ctx context.Context, tx *gorm.DB, product *types.Product) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Product, error)
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Product, int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{db: db, log: baseLog.With("repo", "ProductRepo")}
}

func (r *productRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *productRepo) Create(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	return r.conn(tx).WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Product, error) {
	var product types.Product
	if err := r.conn(tx).WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Product, int64, error) {
	query := r.conn(tx).WithContext(ctx).Model(&types.Product{})
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

	var products []*types.Product
	if err := query.Order("created_at DESC").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]interface{}) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Product{ID: id}).
		Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.conn(tx).WithContext(ctx).Delete(&types.Product{}, id).Error
}

func (r *productRepo) Categories(ctx context.Context, tx *gorm.DB) ([]CategoryCount, error) {
	var result []CategoryCount
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Product{}).
		Select("category AS name, COUNT(id) AS count").
		Where("status = ?", "active").
		Group("category").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
