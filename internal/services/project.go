package services

import (
	"context"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/jsoncol"
	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/types"
)

type ProjectService interface {
	List(ctx context.Context, filter repos.ListFilter) ([]*types.Project, int64, error)
	Get(ctx context.Context, id uint) (*types.Project, error)
	Create(ctx context.Context, project *types.Project, mainImage *multipart.FileHeader, galleryImages []*multipart.FileHeader) error
	Update(ctx context.Context, id uint, fields map[string]interface{}, mainImage *multipart.FileHeader, galleryImages []*multipart.FileHeader) (*types.Project, error)
	Delete(ctx context.Context, id uint) error
	Categories(ctx context.Context) ([]repos.CategoryCount, error)
}

type projectService struct {
	db          *gorm.DB
	log         *logger.Logger
	projectRepo repos.ProjectRepo
	storage     *StorageService
}

func NewProjectService(db *gorm.DB, log *logger.Logger, projectRepo repos.ProjectRepo, storage *StorageService) ProjectService {
	return &projectService{
		db:          db,
		log:         log.With("service", "ProjectService"),
		projectRepo: projectRepo,
		storage:     storage,
	}
}

func (s *projectService) List(ctx context.Context, filter repos.ListFilter) ([]*types.Project, int64, error) {
	return s.projectRepo.List(ctx, nil, filter)
}

func (s *projectService) Get(ctx context.Context, id uint) (*types.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "project")
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, project *types.Project, mainImage *multipart.FileHeader, galleryImages []*multipart.FileHeader) error {
	if project.Status == "" {
		project.Status = "active"
	}

	var written []string
	if mainImage != nil {
		saved, err := s.storage.SaveUpload(DirProjects, mainImage, 0, UploadRules{ContentTypePrefix: "image/"})
		if err != nil {
			return err
		}
		project.MainImagePath = saved.Path
		written = append(written, saved.Path)
	}
	for _, fh := range galleryImages {
		saved, err := s.storage.SaveUpload(DirProjectGallery, fh, 0, UploadRules{ContentTypePrefix: "image/"})
		if err != nil {
			s.storage.RemoveAll(written)
			return err
		}
		project.GalleryImages = append(project.GalleryImages, saved.Path)
		written = append(written, saved.Path)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.projectRepo.Create(ctx, tx, project)
	})
	if err != nil {
		s.storage.RemoveAll(written)
		return err
	}
	return nil
}

func (s *projectService) Update(ctx context.Context, id uint, fields map[string]interface{}, mainImage *multipart.FileHeader, galleryImages []*multipart.FileHeader) (*types.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "project")
	}

	var written []string
	var replaced []string
	if mainImage != nil {
		saved, err := s.storage.SaveUpload(DirProjects, mainImage, id, UploadRules{ContentTypePrefix: "image/"})
		if err != nil {
			return nil, err
		}
		fields["main_image_path"] = saved.Path
		written = append(written, saved.Path)
		replaced = append(replaced, project.MainImagePath)
	}
	if len(galleryImages) > 0 {
		paths := append(jsoncol.List{}, project.GalleryImages...)
		for _, fh := range galleryImages {
			saved, err := s.storage.SaveUpload(DirProjectGallery, fh, id, UploadRules{ContentTypePrefix: "image/"})
			if err != nil {
				s.storage.RemoveAll(written)
				return nil, err
			}
			paths = append(paths, saved.Path)
			written = append(written, saved.Path)
		}
		fields["gallery_images"] = paths
	}

	if len(fields) > 0 {
		if err := s.projectRepo.Update(ctx, nil, id, fields); err != nil {
			s.storage.RemoveAll(written)
			return nil, err
		}
	}
	s.storage.RemoveAll(replaced)
	return s.projectRepo.GetByID(ctx, nil, id)
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	project, err := s.projectRepo.GetByID(ctx, nil, id)
	if err != nil {
		return entityErr(err, "project")
	}
	if err := s.projectRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.storage.Remove(project.MainImagePath)
	s.storage.RemoveAll(project.GalleryImages)
	return nil
}

func (s *projectService) Categories(ctx context.Context) ([]repos.CategoryCount, error) {
	return s.projectRepo.Categories(ctx, nil)
}
