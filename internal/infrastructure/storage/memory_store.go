package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	store "github.com/ayes009/photoshare-webapp/internal/adapter/storage"
	"github.com/ayes009/photoshare-webapp/internal/domain"
)

type memoryObject struct {
	data        []byte
	contentType string
	etag        string
}

// MemoryStorage is an in-process container used by tests and by the
// "memory" backend for local development. Everything is lost on restart.
type MemoryStorage struct {
	mu        sync.RWMutex
	objects   map[string]memoryObject
	version   int64
	publicURL string
}

func NewMemoryStorage(publicURL string) *MemoryStorage {
	return &MemoryStorage{
		objects:   make(map[string]memoryObject),
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *MemoryStorage) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.objects[key]
	return ok, nil
}

func (s *MemoryStorage) Download(ctx context.Context, key string) (*store.Blob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("downloading %s: %w", key, domain.ErrBlobNotFound)
	}

	data := make([]byte, len(obj.data))
	copy(data, obj.data)

	return &store.Blob{
		Key:         key,
		ContentType: obj.contentType,
		ETag:        obj.etag,
		Data:        data,
	}, nil
}

func (s *MemoryStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading upload body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.putLocked(key, data, contentType), nil
}

func (s *MemoryStorage) UploadIfMatch(ctx context.Context, key string, reader io.Reader, contentType string, size int64, etag string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("reading upload body: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.objects[key]
	if !ok {
		return "", fmt.Errorf("uploading %s: %w", key, domain.ErrBlobNotFound)
	}
	if current.etag != etag {
		return "", fmt.Errorf("uploading %s: %w", key, domain.ErrPreconditionFailed)
	}

	return s.putLocked(key, data, contentType), nil
}

func (s *MemoryStorage) putLocked(key string, data []byte, contentType string) string {
	s.version++
	etag := `"` + strconv.FormatInt(s.version, 10) + `"`
	s.objects[key] = memoryObject{
		data:        data,
		contentType: contentType,
		etag:        etag,
	}
	return etag
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return fmt.Errorf("deleting %s: %w", key, domain.ErrBlobNotFound)
	}
	delete(s.objects, key)
	return nil
}

func (s *MemoryStorage) GetURL(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/%s", s.publicURL, url.PathEscape(key)), nil
}

// ServeHTTP serves stored objects by key, the last path segment of the
// request. Mount it where publicURL points.
func (s *MemoryStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	blob, err := s.Download(r.Context(), store.KeyFromURL(r.URL.String()))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("ETag", blob.ETag)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(blob.Data)
	}
}
