package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/adapter/repository"
	"github.com/ayes009/photoshare-webapp/internal/adapter/storage"
	"github.com/ayes009/photoshare-webapp/internal/domain"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/domain/valueobject"
	"github.com/ayes009/photoshare-webapp/internal/pkg/apperror"
	"github.com/ayes009/photoshare-webapp/internal/pkg/idgen"
)

const (
	uploadFailedMessage = "failed to upload photo"
	deleteFailedMessage = "failed to delete photo"
	fallbackBlobName    = "photo"
)

type Service struct {
	photoRepo repository.PhotoRepository
	photos    storage.BlobStore
	ids       *idgen.Generator
	logger    *zap.Logger
}

func NewService(
	photoRepo repository.PhotoRepository,
	photos storage.BlobStore,
	ids *idgen.Generator,
	logger *zap.Logger,
) *Service {
	return &Service{
		photoRepo: photoRepo,
		photos:    photos,
		ids:       ids,
		logger:    logger,
	}
}

type UploadInput struct {
	Title     string
	Caption   string
	Location  string
	Tags      string
	ImageData string
	FileName  string
	Username  string
}

// Upload stores the image blob and then its metadata document. The two writes
// are not atomic: if the document write fails the blob is left behind.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*entity.Photo, error) {
	if input.Title == "" || input.ImageData == "" || input.FileName == "" {
		return nil, apperror.Validation(domain.ErrMissingUploadFields)
	}

	data, err := DecodeImageData(input.ImageData)
	if err != nil {
		return nil, apperror.Validation(err)
	}

	creator := input.Username
	if creator == "" {
		creator = entity.AnonymousUsername
	}

	id := s.ids.Next()
	blobName := BlobName(id, input.FileName)
	contentType := valueobject.ImageContentTypeFromFilename(input.FileName)

	if _, err := s.photos.Upload(ctx, blobName, bytes.NewReader(data), contentType, int64(len(data))); err != nil {
		return nil, apperror.Storage(uploadFailedMessage, err)
	}

	url, err := s.photos.GetURL(ctx, blobName)
	if err != nil {
		s.logger.Warn("photo blob orphaned", zap.String("blob", blobName), zap.Error(err))
		return nil, apperror.Storage(uploadFailedMessage, err)
	}

	photo := entity.NewPhoto(id, input.Title, input.Caption, input.Location, input.Tags, url, creator)
	if err := s.photoRepo.Create(ctx, photo); err != nil {
		s.logger.Warn("photo blob orphaned", zap.String("blob", blobName), zap.Error(err))
		return nil, apperror.Storage(uploadFailedMessage, err)
	}

	s.logger.Info("photo uploaded",
		zap.String("photo_id", photo.ID),
		zap.String("blob", blobName),
		zap.String("creator", creator),
		zap.Int("bytes", len(data)),
	)

	return photo, nil
}

// Delete removes the metadata document and, best effort, the image blob.
func (s *Service) Delete(ctx context.Context, photoID string) error {
	photo, _, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return apperror.NotFound(err)
		}
		return apperror.Storage(deleteFailedMessage, err)
	}

	s.deleteBlob(ctx, photo)

	if err := s.photoRepo.Delete(ctx, photoID); err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return apperror.NotFound(err)
		}
		return apperror.Storage(deleteFailedMessage, err)
	}

	s.logger.Info("photo deleted", zap.String("photo_id", photoID))
	return nil
}

func (s *Service) deleteBlob(ctx context.Context, photo *entity.Photo) {
	key := storage.KeyFromURL(photo.URL)
	if key == "" || key == "." || key == "/" {
		s.logger.Warn("photo has no blob url", zap.String("photo_id", photo.ID))
		return
	}

	exists, err := s.photos.Exists(ctx, key)
	if err != nil {
		s.logger.Warn("checking photo blob failed", zap.String("blob", key), zap.Error(err))
		return
	}
	if !exists {
		return
	}

	if err := s.photos.Delete(ctx, key); err != nil {
		s.logger.Warn("deleting photo blob failed", zap.String("blob", key), zap.Error(err))
	}
}

// DecodeImageData accepts plain base64 or a data URI.
func DecodeImageData(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(payload, "data:") {
		if _, rest, ok := strings.Cut(payload, ","); ok {
			payload = rest
		}
	}
	payload = strings.Join(strings.Fields(payload), "")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil || len(data) == 0 {
		return nil, domain.ErrInvalidImageData
	}
	return data, nil
}

// BlobName is "<id>-<file name>" with the file name reduced to its base name
// and spaces replaced by underscores.
func BlobName(id, fileName string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		name = fallbackBlobName
	}
	return id + "-" + strings.ReplaceAll(name, " ", "_")
}
