package services

import (
	"context"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/inoxmetalart/backend/internal/logger"
	"github.com/inoxmetalart/backend/internal/repos"
	"github.com/inoxmetalart/backend/internal/types"
)

type ApplicationService interface {
	List(ctx context.Context, filter repos.ListFilter) ([]*types.Application, int64, error)
	Get(ctx context.Context, id uint) (*types.Application, error)
	Create(ctx context.Context, application *types.Application, files []*multipart.FileHeader) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*types.Application, error)
	Delete(ctx context.Context, id uint) error
}

type applicationService struct {
	db              *gorm.DB
	log             *logger.Logger
	applicationRepo repos.ApplicationRepo
	storage         *StorageService
	telegram        *TelegramService
	email           *EmailService
}

func NewApplicationService(
	db *gorm.DB,
	log *logger.Logger,
	applicationRepo repos.ApplicationRepo,
	storage *StorageService,
	telegram *TelegramService,
	email *EmailService,
) ApplicationService {
	return &applicationService{
		db:              db,
		log:             log.With("service", "ApplicationService"),
		applicationRepo: applicationRepo,
		storage:         storage,
		telegram:        telegram,
		email:           email,
	}
}

func (s *applicationService) List(ctx context.Context, filter repos.ListFilter) ([]*types.Application, int64, error) {
	return s.applicationRepo.List(ctx, nil, filter)
}

func (s *applicationService) Get(ctx context.Context, id uint) (*types.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, entityErr(err, "application")
	}
	return application, nil
}

// Create stages the attached files, inserts the lead row already carrying
// the final paths, and then fires the outbound notifications. Notification
// failures are logged only; the committed lead is never rolled back for a
// side-effect failure.
func (s *applicationService) Create(ctx context.Context, application *types.Application, files []*multipart.FileHeader) error {
	var written []string
	for _, fh := range files {
		saved, err := s.storage.SaveUpload(DirApplications, fh, 0, UploadRules{AllowedExtensions: ApplicationExtensions})
		if err != nil {
			s.storage.RemoveAll(written)
			return err
		}
		application.FilePaths = append(application.FilePaths, saved.Path)
		written = append(written, saved.Path)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.applicationRepo.Create(ctx, tx, application)
	})
	if err != nil {
		s.storage.RemoveAll(written)
		return err
	}

	s.notify(ctx, application)
	return nil
}

func (s *applicationService) notify(ctx context.Context, application *types.Application) {
	if s.telegram != nil {
		if err := s.telegram.SendApplication(ctx, application); err != nil {
			s.log.Warn("Telegram notification failed", "application_id", application.ID, "error", err)
		}
	}
	if s.email != nil {
		if err := s.email.SendApplication(application); err != nil {
			s.log.Warn("Email notification failed", "application_id", application.ID, "error", err)
		}
	}
}

func (s *applicationService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*types.Application, error) {
	if _, err := s.applicationRepo.GetByID(ctx, nil, id); err != nil {
		return nil, entityErr(err, "application")
	}
	if len(fields) > 0 {
		if err := s.applicationRepo.Update(ctx, nil, id, fields); err != nil {
			return nil, err
		}
	}
	return s.applicationRepo.GetByID(ctx, nil, id)
}

func (s *applicationService) Delete(ctx context.Context, id uint) error {
	application, err := s.applicationRepo.GetByID(ctx, nil, id)
	if err != nil {
		return entityErr(err, "application")
	}
	if err := s.applicationRepo.Delete(ctx, nil, id); err != nil {
		return err
	}
	s.storage.RemoveAll(application.FilePaths)
	return nil
}
