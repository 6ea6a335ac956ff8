package storage

import (
	"context"
	"errors"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	store "github.com/ayes009/photoshare-webapp/internal/adapter/storage"
	"github.com/ayes009/photoshare-webapp/internal/domain"
)

// InstrumentedStorage counts calls to the wrapped container by operation
// and outcome.
type InstrumentedStorage struct {
	next      store.BlobStore
	container string
	ops       *prometheus.CounterVec
}

func NewInstrumentedStorage(next store.BlobStore, container string, ops *prometheus.CounterVec) *InstrumentedStorage {
	return &InstrumentedStorage{next: next, container: container, ops: ops}
}

func (s *InstrumentedStorage) observe(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrBlobNotFound), errors.Is(err, domain.ErrContainerNotFound):
		outcome = "not_found"
	case errors.Is(err, domain.ErrPreconditionFailed):
		outcome = "conflict"
	default:
		outcome = "error"
	}
	s.ops.WithLabelValues(s.container, op, outcome).Inc()
}

func (s *InstrumentedStorage) List(ctx context.Context) ([]string, error) {
	keys, err := s.next.List(ctx)
	s.observe("list", err)
	return keys, err
}

func (s *InstrumentedStorage) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.next.Exists(ctx, key)
	s.observe("exists", err)
	return ok, err
}

func (s *InstrumentedStorage) Download(ctx context.Context, key string) (*store.Blob, error) {
	blob, err := s.next.Download(ctx, key)
	s.observe("download", err)
	return blob, err
}

func (s *InstrumentedStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	etag, err := s.next.Upload(ctx, key, reader, contentType, size)
	s.observe("upload", err)
	return etag, err
}

func (s *InstrumentedStorage) UploadIfMatch(ctx context.Context, key string, reader io.Reader, contentType string, size int64, etag string) (string, error) {
	newETag, err := s.next.UploadIfMatch(ctx, key, reader, contentType, size, etag)
	s.observe("upload_if_match", err)
	return newETag, err
}

func (s *InstrumentedStorage) Delete(ctx context.Context, key string) error {
	err := s.next.Delete(ctx, key)
	s.observe("delete", err)
	return err
}

func (s *InstrumentedStorage) GetURL(ctx context.Context, key string) (string, error) {
	u, err := s.next.GetURL(ctx, key)
	s.observe("get_url", err)
	return u, err
}
