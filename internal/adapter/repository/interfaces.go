package repository

import (
	"context"

	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// PhotoRepository stores one metadata document per photo. Missing documents
// are reported as domain.ErrPhotoNotFound.
type PhotoRepository interface {
	// List returns every readable photo, newest first. A missing container
	// yields an empty list.
	List(ctx context.Context) ([]entity.Photo, error)
	// GetByID returns the photo together with the entity tag of the document
	// it was read from.
	GetByID(ctx context.Context, id string) (*entity.Photo, string, error)
	Create(ctx context.Context, photo *entity.Photo) error
	// Update overwrites the document only if it is still at etag, otherwise it
	// returns domain.ErrPreconditionFailed.
	Update(ctx context.Context, photo *entity.Photo, etag string) error
	Delete(ctx context.Context, id string) error
}
