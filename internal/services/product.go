package services

import (
	"context"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/types"
)

type ProductService interface {
	List(ctx context.Context, filter repos.ListFilter) ([]*types.Product, int64, error)
	Get(ctx context.Context, id uint) (*types.Product, error)
	Create(ctx context.Context, product *types.Product) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*types.Product, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]repos.CategoryCount, error)
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (*SavedFile, error)
	UploadVideo(ctx context.Context, id uint, fh *multipart.FileHeader) (*types.Product, error)
}

type productService struct {
	db          *gorm.DB
	log         *logger.Logger
	productRepo repos.ProductRepo
	storage     *StorageService
}

func NewProductService(db *gorm.DB, log *logger.Logger, productRepo repos.ProductRepo, storage *StorageService) ProductService {
	return &productService{
		db:          db,
		log:         log.With("service", "ProductService"),
		productRepo: productRepo,
		storage:     storage,
	}
}

func (s *productService) List(ctx context.Context, filter repos.ListFilter) ([]*types.Product, int64, error) {
	return s.productRepo.List(ctx, nil, filter)
}

func (s *productService) Get(ctx context.Context, id uint) (*types.Product, error) {
	product, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "product")
	}
	return product, nil
}

func (s *productService) Create(ctx context.Context, product *types.Product) error {
	if product.Status == "" {
		product.Status = "active"
	}
	return s.productRepo.Create(ctx, nil, product)
}

func (s *productService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*types.Product, error) {
	if _, err := s.productRepo.GetByID(ctx, nil, id); err != nil {
		return nil, entityErr(err, "product")
	}
	if len(fields) > 0 {
		if err := s.productRepo.Update(ctx, nil, id, fields); err != nil {
			return nil, err
		}
	}
	return s.productRepo.GetByID(ctx, nil, id)
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return entityErr(err, "product")
	}
	if err := s.productRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.storage.Remove(product.ImagePath)
	s.storage.RemoveAll(product.Images)
	s.storage.RemoveAll(product.Videos)
	return nil
}

func (s *productService) Categories(ctx context.Context) ([]repos.CategoryCount, error) {
	return s.productRepo.Categories(ctx, nil)
}

func (s *productService) UploadImage(ctx context.Context, fh *multipart.FileHeader) (*SavedFile, error) {
	return s.storage.SaveUpload(DirProducts, fh, 0, UploadRules{
		ContentTypePrefix: "image/",
		MaxBytes:          MaxProductImageBytes,
	})
}

// UploadVideo stores the file first and appends its path to the product's
// video list inside one transaction; the file is removed if the row update
// fails.
func (s *productService) UploadVideo(ctx context.Context, id uint, fh *multipart.FileHeader) (*types.Product, error) {
	product, err := s.productRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "product")
	}

	saved, err := s.storage.SaveUpload(DirVideos, fh, id, UploadRules{
		ContentTypePrefix: "video/",
		MaxBytes:          MaxProductVideoBytes,
	})
	if err != nil {
		return nil, err
	}

	videos := append(product.Videos, saved.Path)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.productRepo.Update(ctx, tx, id, map[string]interface{}{"videos": videos})
	})
	if err != nil {
		s.storage.Remove(saved.Path)
		return nil, err
	}
	return s.productRepo.GetByID(ctx, nil, id)
}
