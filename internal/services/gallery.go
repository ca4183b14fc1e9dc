package services

import (
	"context"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/types"
)

type GalleryService interface {
	List(ctx context.Context, filter repos.ListFilter) ([]*types.GalleryItem, int64, error)
	Get(ctx context.Context, id uint) (*types.GalleryItem, error)
	Create(ctx context.Context, item *types.GalleryItem, image *multipart.FileHeader) error
	Update(ctx context.Context, id uint, fields map[string]interface{}, image *multipart.FileHeader) (*types.GalleryItem, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]repos.CategoryCount, error)
}

type galleryService struct {
	db          *gorm.DB
	log         *logger.Logger
	galleryRepo repos.GalleryRepo
	storage     *StorageService
}

func NewGalleryService(db *gorm.DB, log *logger.Logger, galleryRepo repos.GalleryRepo, storage *StorageService) GalleryService {
	return &galleryService{
		db:          db,
		log:         log.With("service", "GalleryService"),
		galleryRepo: galleryRepo,
		storage:     storage,
	}
}

func (s *galleryService) List(ctx context.Context, filter repos.ListFilter) ([]*types.GalleryItem, int64, error) {
	return s.galleryRepo.List(ctx, nil, filter)
}

func (s *galleryService) Get(ctx context.Context, id uint) (*types.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "gallery item")
	}
	return item, nil
}

// Create writes the image before the row, so the row is inserted already
// carrying its final path; the file is removed if the insert fails.
func (s *galleryService) Create(ctx context.Context, item *types.GalleryItem, image *multipart.FileHeader) error {
	if item.Status == "" {
		item.Status = "active"
	}
	if image != nil {
		saved, err := s.storage.SaveUpload(DirGallery, image, 0, UploadRules{ContentTypePrefix: "image/"})
		if err != nil {
			return err
		}
		item.ImagePath = saved.Path
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.galleryRepo.Create(ctx, tx, item)
	})
	if err != nil {
		s.storage.Remove(item.ImagePath)
		return err
	}
	return nil
}

func (s *galleryService) Update(ctx context.Context, id uint, fields map[string]interface{}, image *multipart.FileHeader) (*types.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "gallery item")
	}

	var replaced string
	if image != nil {
		saved, err := s.storage.SaveUpload(DirGallery, image, id, UploadRules{ContentTypePrefix: "image/"})
		if err != nil {
			return nil, err
		}
		fields["image_path"] = saved.Path
		replaced = item.ImagePath
	}
	if len(fields) > 0 {
		if err := s.galleryRepo.Update(ctx, nil, id, fields); err != nil {
			if p, ok := fields["image_path"].(string); ok {
				s.storage.Remove(p)
			}
			return nil, err
		}
	}
	s.storage.Remove(replaced)
	return s.galleryRepo.GetByID(ctx, nil, id)
}

func (s *galleryService) Delete(ctx context.Context, id uint) error {
	item, err := s.galleryRepo.GetByID(ctx, nil, id)
	if err != nil {
		return entityErr(err, "gallery item")
	}
	if err := s.galleryRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.storage.Remove(item.ImagePath)
	s.storage.Remove(item.ThumbnailPath)
	return nil
}

func (s *galleryService) Categories(ctx context.Context) ([]repos.CategoryCount, error) {
	return s.galleryRepo.Categories(ctx, nil)
}
