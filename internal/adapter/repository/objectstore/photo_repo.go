package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	store "github.com/ayes009/photoshare-webapp/internal/adapter/storage"
	"github.com/ayes009/photoshare-webapp/internal/domain"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
)

const documentContentType = "application/json"

// PhotoRepo keeps each photo as a JSON document named <id>.json in the
// metadata container.
type PhotoRepo struct {
	blobs  store.BlobStore
	logger *zap.Logger
}

func NewPhotoRepo(blobs store.BlobStore, logger *zap.Logger) *PhotoRepo {
	return &PhotoRepo{blobs: blobs, logger: logger}
}

func (r *PhotoRepo) List(ctx context.Context) ([]entity.Photo, error) {
	keys, err := r.blobs.List(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrContainerNotFound) {
			return []entity.Photo{}, nil
		}
		return nil, fmt.Errorf("listing metadata documents: %w", err)
	}

	photos := make([]entity.Photo, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}

		photo, _, err := r.read(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Warn("skipping unreadable photo document",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		photos = append(photos, *photo)
	}

	// Undated documents carry the zero time and sort last.
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].UploadedAt.Equal(photos[j].UploadedAt) {
			return photos[i].ID > photos[j].ID
		}
		return photos[i].UploadedAt.After(photos[j].UploadedAt)
	})

	return photos, nil
}

func (r *PhotoRepo) GetByID(ctx context.Context, id string) (*entity.Photo, string, error) {
	photo, etag, err := r.read(ctx, entity.MetadataKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) || errors.Is(err, domain.ErrContainerNotFound) {
			return nil, "", domain.ErrPhotoNotFound
		}
		return nil, "", err
	}
	return photo, etag, nil
}

func (r *PhotoRepo) Create(ctx context.Context, photo *entity.Photo) error {
	data, err := json.Marshal(newPhotoDocument(photo))
	if err != nil {
		return fmt.Errorf("encoding photo document: %w", err)
	}

	if _, err := r.blobs.Upload(ctx, photo.MetadataKey(), bytes.NewReader(data), documentContentType, int64(len(data))); err != nil {
		return fmt.Errorf("writing photo document: %w", err)
	}
	return nil
}

func (r *PhotoRepo) Update(ctx context.Context, photo *entity.Photo, etag string) error {
	data, err := json.Marshal(newPhotoDocument(photo))
	if err != nil {
		return fmt.Errorf("encoding photo document: %w", err)
	}

	_, err = r.blobs.UploadIfMatch(ctx, photo.MetadataKey(), bytes.NewReader(data), documentContentType, int64(len(data)), etag)
	if err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			return domain.ErrPhotoNotFound
		}
		return fmt.Errorf("updating photo document: %w", err)
	}
	return nil
}

func (r *PhotoRepo) Delete(ctx context.Context, id string) error {
	if err := r.blobs.Delete(ctx, entity.MetadataKey(id)); err != nil {
		if errors.Is(err, domain.ErrBlobNotFound) {
			return domain.ErrPhotoNotFound
		}
		return fmt.Errorf("deleting photo document: %w", err)
	}
	return nil
}

func (r *PhotoRepo) read(ctx context.Context, key string) (*entity.Photo, string, error) {
	blob, err := r.blobs.Download(ctx, key)
	if err != nil {
		return nil, "", err
	}

	var doc photoDocument
	if err := json.Unmarshal(blob.Data, &doc); err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", key, err)
	}
	if doc.ID == "" {
		doc.ID = strings.TrimSuffix(key, ".json")
	}

	return doc.toEntity(), blob.ETag, nil
}
