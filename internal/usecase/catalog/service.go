package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/adapter/repository"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
)

type Service struct {
	photoRepo repository.PhotoRepository
	logger    *zap.Logger
}

func NewService(photoRepo repository.PhotoRepository, logger *zap.Logger) *Service {
	return &Service{photoRepo: photoRepo, logger: logger}
}

// List returns every photo newest first. A store that cannot be listed is
// reported as an empty catalog.
func (s *Service) List(ctx context.Context) ([]entity.Photo, error) {
	photos, err := s.photoRepo.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("listing photos failed, returning empty catalog", zap.Error(err))
		return []entity.Photo{}, nil
	}
	return photos, nil
}
