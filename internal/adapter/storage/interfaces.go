package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

// Blob is a downloaded object together with the entity tag it was read at.
type Blob struct {
	Key         string
	ContentType string
	ETag        string
	Data        []byte
}

// BlobStore is one container of an object store. Missing keys are reported
// as domain.ErrBlobNotFound, a missing container as domain.ErrContainerNotFound
// and a failed If-Match as domain.ErrPreconditionFailed.
type BlobStore interface {
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Download(ctx context.Context, key string) (*Blob, error)
	// Upload overwrites key and returns the new entity tag.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error)
	// UploadIfMatch overwrites key only if its current entity tag is etag.
	UploadIfMatch(ctx context.Context, key string, reader io.Reader, contentType string, size int64, etag string) (string, error)
	Delete(ctx context.Context, key string) error
	GetURL(ctx context.Context, key string) (string, error)
}

// KeyFromURL recovers the blob key from a URL produced by GetURL: the last
// path segment, without any query string.
func KeyFromURL(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	s, _, _ := strings.Cut(rawURL, "?")
	return path.Base(s)
}
