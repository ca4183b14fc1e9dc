package services

import (
	"context"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/types"
)

type MaterialService interface {
	List(ctx context.Context, filter repos.ListFilter) ([]*types.Material, int64, error)
	Get(ctx context.Context, id uint) (*types.Material, error)
	Create(ctx context.Context, material *types.Material, file *multipart.FileHeader) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*types.Material, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]repos.CategoryCount, error)
	RecordDownload(ctx context.Context, id uint) error
	UploadFile(ctx context.Context, fh *multipart.FileHeader) (*SavedFile, error)
}

type materialService struct {
	db           *gorm.DB
	log          *logger.Logger
	materialRepo repos.MaterialRepo
	storage      *StorageService
}

func NewMaterialService(db *gorm.DB, log *logger.Logger, materialRepo repos.MaterialRepo, storage *StorageService) MaterialService {
	return &materialService{
		db:           db,
		log:          log.With("service", "MaterialService"),
		materialRepo: materialRepo,
		storage:      storage,
	}
}

func (s *materialService) List(ctx context.Context, filter repos.ListFilter) ([]*types.Material, int64, error) {
	filter.ActiveOnly = true
	return s.materialRepo.List(ctx, nil, filter)
}

func (s *materialService) Get(ctx context.Context, id uint) (*types.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "material")
	}
	return material, nil
}

// Create persists the document first, then inserts the row already carrying
// the final path, size and type; the file is removed if the insert fails.
func (s *materialService) Create(ctx context.Context, material *types.Material, file *multipart.FileHeader) error {
	saved, err := s.storage.SaveUpload(DirMaterials, file, 0, UploadRules{AllowedExtensions: MaterialExtensions})
	if err != nil {
		return err
	}
	material.FilePath = saved.Path
	material.FileSize = saved.SizeHuman
	material.FileType = saved.FileType
	material.IsActive = true

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.materialRepo.Create(ctx, tx, material)
	})
	if err != nil {
		s.storage.Remove(saved.Path)
		return err
	}
	return nil
}

func (s *materialService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*types.Material, error) {
	if _, err := s.materialRepo.GetByID(ctx, nil, id); err != nil {
		return nil, entityErr(err, "material")
	}
	if len(fields) > 0 {
		if err := s.materialRepo.Update(ctx, nil, id, fields); err != nil {
			return nil, err
		}
	}
	return s.materialRepo.GetByID(ctx, nil, id)
}

func (s *materialService) Delete(ctx context.Context, id uint) error {
	material, err := s.materialRepo.GetByID(ctx, nil, id)
	if err != nil {
		return entityErr(err, "material")
	}
	if err := s.materialRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.storage.Remove(material.FilePath)
	return nil
}

func (s *materialService) Categories(ctx context.Context) ([]repos.CategoryCount, error) {
	return s.materialRepo.Categories(ctx, nil)
}

func (s *materialService) RecordDownload(ctx context.Context, id uint) error {
	if _, err := s.materialRepo.GetByID(ctx, nil, id); err != nil {
		return entityErr(err, "material")
	}
	return s.materialRepo.IncrementDownloads(ctx, nil, id)
}

// UploadFile stores a document without binding it to a row; the admin UI
// uses it when replacing an existing material's file.
func (s *materialService) UploadFile(ctx context.Context, fh *multipart.FileHeader) (*SavedFile, error) {
	return s.storage.SaveUpload(DirMaterials, fh, 0, UploadRules{AllowedExtensions: MaterialExtensions})
}
