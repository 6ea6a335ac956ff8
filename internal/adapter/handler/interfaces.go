package handler

import (
	"context"

	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/usecase/auth"
	"github.com/ayes009/photoshare-webapp/internal/usecase/upload"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type AuthService interface {
	Login(ctx context.Context, input auth.LoginInput) (*entity.Session, error)
}

type CatalogService interface {
	List(ctx context.Context) ([]entity.Photo, error)
}

type UploadService interface {
	Upload(ctx context.Context, input upload.UploadInput) (*entity.Photo, error)
	Delete(ctx context.Context, photoID string) error
}

type EngagementService interface {
	Like(ctx context.Context, photoID string) (*entity.Photo, error)
	Rate(ctx context.Context, photoID string, rating float64) (*entity.Photo, error)
	Comment(ctx context.Context, photoID, username, text string) (*entity.Comment, error)
}
