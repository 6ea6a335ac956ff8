package objectstore_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/adapter/repository/objectstore"
	store "github.com/ayes009/photoshare-webapp/internal/adapter/storage"
	"github.com/ayes009/photoshare-webapp/internal/domain"
	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/infrastructure/storage"
	"github.com/ayes009/photoshare-webapp/internal/mocks"
)

func putDocument(t *testing.T, s *storage.MemoryStorage, key, body string) {
	t.Helper()
	_, err := s.Upload(context.Background(), key, bytes.NewReader([]byte(body)), "application/json", int64(len(body)))
	require.NoError(t, err)
}

func TestPhotoRepo_CreateAndGet(t *testing.T) {
	blobs := storage.NewMemoryStorage("")
	repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())
	ctx := context.Background()

	photo := entity.NewPhoto("1767728796123", "Beach", "Sunset", "Lisbon", "sea,sun", "http://blobs/1767728796123-beach.jpg", "alice")
	require.NoError(t, repo.Create(ctx, photo))

	blob, err := blobs.Download(ctx, "1767728796123.json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", blob.ContentType)
	assert.Contains(t, string(blob.Data), `"comments":[]`)
	assert.Contains(t, string(blob.Data), `"creatorName":"alice"`)
	assert.Contains(t, string(blob.Data), `"ratingCount":0`)

	got, etag, err := repo.GetByID(ctx, "1767728796123")
	require.NoError(t, err)
	assert.NotEmpty(t, etag)
	assert.Equal(t, photo.Title, got.Title)
	assert.Equal(t, photo.URL, got.URL)
	assert.Empty(t, got.Comments)
	assert.NotNil(t, got.Comments)
	assert.WithinDuration(t, photo.UploadedAt, got.UploadedAt, time.Millisecond)
}

func TestPhotoRepo_GetByID_NotFound(t *testing.T) {
	repo := objectstore.NewPhotoRepo(storage.NewMemoryStorage(""), zap.NewNop())

	_, _, err := repo.GetByID(context.Background(), "404")

	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
}

func TestPhotoRepo_GetByID_LegacyDocument(t *testing.T) {
	blobs := storage.NewMemoryStorage("")
	putDocument(t, blobs, "1700000000000.json", `{
		"id": "1700000000000",
		"title": "Old",
		"url": "https://account.blob.core.windows.net/photos/1700000000000-old.jpg?sv=2021",
		"creatorName": "bob",
		"likes": 3,
		"rating": 4,
		"ratingCount": 1,
		"uploadedAt": "2023-11-14T22:13:20.123456",
		"comments": [{"id": "c1", "userId": "u1", "username": "carol", "text": "nice", "timestamp": "2023-11-15T08:00:00.5"}]
	}`)
	repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())

	got, _, err := repo.GetByID(context.Background(), "1700000000000")

	require.NoError(t, err)
	assert.Equal(t, 3, got.Likes)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 123456000, time.UTC), got.UploadedAt)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "carol", got.Comments[0].Username)
	assert.Equal(t, time.Date(2023, 11, 15, 8, 0, 0, 500000000, time.UTC), got.Comments[0].Timestamp)
}

func TestPhotoRepo_List(t *testing.T) {
	t.Run("sorts newest first and skips unreadable documents", func(t *testing.T) {
		blobs := storage.NewMemoryStorage("")
		putDocument(t, blobs, "1.json", `{"id":"1","title":"older","uploadedAt":"2024-01-01T00:00:00.000Z"}`)
		putDocument(t, blobs, "2.json", `{"id":"2","title":"newer","uploadedAt":"2024-06-01T00:00:00.000Z"}`)
		putDocument(t, blobs, "3.json", `not json`)
		putDocument(t, blobs, "readme.txt", `ignored`)
		repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())

		photos, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, photos, 2)
		assert.Equal(t, "2", photos[0].ID)
		assert.Equal(t, "1", photos[1].ID)
		assert.Equal(t, entity.AnonymousUsername, photos[0].CreatorName)
	})

	t.Run("undated documents are listed last", func(t *testing.T) {
		blobs := storage.NewMemoryStorage("")
		putDocument(t, blobs, "1.json", `{"id":"1","title":"dated","uploadedAt":"2024-01-01T00:00:00.000Z"}`)
		putDocument(t, blobs, "2.json", `{"id":"2","title":"no time"}`)
		putDocument(t, blobs, "3.json", `{"id":"3","title":"bad time","uploadedAt":"yesterday"}`)
		repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())

		photos, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, photos, 3)
		assert.Equal(t, "1", photos[0].ID)
		assert.Equal(t, "3", photos[1].ID)
		assert.Equal(t, "2", photos[2].ID)
		assert.Equal(t, "yesterday", photos[1].UploadedAtString())
		assert.Empty(t, photos[2].UploadedAtString())
	})

	t.Run("empty container", func(t *testing.T) {
		repo := objectstore.NewPhotoRepo(storage.NewMemoryStorage(""), zap.NewNop())

		photos, err := repo.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, photos)
		assert.Empty(t, photos)
	})

	t.Run("missing container", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blobs := mocks.NewMockBlobStore(ctrl)
		blobs.EXPECT().List(gomock.Any()).Return(nil, domain.ErrContainerNotFound)
		repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())

		photos, err := repo.List(context.Background())

		require.NoError(t, err)
		assert.Empty(t, photos)
	})

	t.Run("list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blobs := mocks.NewMockBlobStore(ctrl)
		blobs.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))
		repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())

		_, err := repo.List(context.Background())

		assert.Error(t, err)
	})

	t.Run("skips documents that fail to download", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		blobs := mocks.NewMockBlobStore(ctrl)
		blobs.EXPECT().List(gomock.Any()).Return([]string{"1.json", "2.json"}, nil)
		blobs.EXPECT().Download(gomock.Any(), "1.json").Return(nil, errors.New("timeout"))
		blobs.EXPECT().Download(gomock.Any(), "2.json").Return(&store.Blob{
			Key:  "2.json",
			Data: []byte(`{"id":"2","title":"ok","uploadedAt":"2024-06-01T00:00:00.000Z"}`),
		}, nil)
		repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())

		photos, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, photos, 1)
		assert.Equal(t, "2", photos[0].ID)
	})
}

func TestPhotoRepo_Update(t *testing.T) {
	blobs := storage.NewMemoryStorage("")
	repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())
	ctx := context.Background()

	photo := entity.NewPhoto("10", "t", "", "", "", "u", "alice")
	require.NoError(t, repo.Create(ctx, photo))

	got, etag, err := repo.GetByID(ctx, "10")
	require.NoError(t, err)

	got.Like()
	require.NoError(t, repo.Update(ctx, got, etag))

	t.Run("stale etag is rejected", func(t *testing.T) {
		got.Like()
		err := repo.Update(ctx, got, etag)
		assert.ErrorIs(t, err, domain.ErrPreconditionFailed)

		current, _, err := repo.GetByID(ctx, "10")
		require.NoError(t, err)
		assert.Equal(t, 1, current.Likes)
	})

	t.Run("missing document", func(t *testing.T) {
		err := repo.Update(ctx, entity.NewPhoto("11", "t", "", "", "", "u", "alice"), `"1"`)
		assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
	})
}

func TestPhotoRepo_Update_KeepsStoredTimestamps(t *testing.T) {
	blobs := storage.NewMemoryStorage("")
	putDocument(t, blobs, "1700000000000.json", `{
		"id": "1700000000000",
		"title": "Old",
		"creatorName": "bob",
		"uploadedAt": "2023-11-14T22:13:20.123456",
		"comments": [
			{"id": "c1", "userId": "u1", "username": "carol", "text": "nice", "timestamp": ""},
			{"id": "c2", "userId": "u2", "username": "dave", "text": "wow", "timestamp": "last tuesday"},
			{"id": "c3", "userId": "u3", "username": "erin", "text": "ok", "timestamp": "2023-11-15 08:00:00.5"}
		]
	}`)
	putDocument(t, blobs, "1700000000001.json", `{"id":"1700000000001","title":"Undated","creatorName":"bob"}`)
	repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())
	ctx := context.Background()

	t.Run("legacy timestamps survive a rewrite", func(t *testing.T) {
		got, etag, err := repo.GetByID(ctx, "1700000000000")
		require.NoError(t, err)

		got.Like()
		got.AddComment(entity.NewComment("frank", "late"))
		require.NoError(t, repo.Update(ctx, got, etag))

		blob, err := blobs.Download(ctx, "1700000000000.json")
		require.NoError(t, err)

		var doc struct {
			UploadedAt string `json:"uploadedAt"`
			Likes      int    `json:"likes"`
			Comments   []struct {
				ID        string `json:"id"`
				Timestamp string `json:"timestamp"`
			} `json:"comments"`
		}
		require.NoError(t, json.Unmarshal(blob.Data, &doc))

		assert.Equal(t, "2023-11-14T22:13:20.123456", doc.UploadedAt)
		assert.Equal(t, 1, doc.Likes)
		require.Len(t, doc.Comments, 4)
		assert.Equal(t, "", doc.Comments[0].Timestamp)
		assert.Equal(t, "last tuesday", doc.Comments[1].Timestamp)
		assert.Equal(t, "2023-11-15 08:00:00.5", doc.Comments[2].Timestamp)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, doc.Comments[3].Timestamp)
	})

	t.Run("document without uploadedAt can be updated", func(t *testing.T) {
		got, etag, err := repo.GetByID(ctx, "1700000000001")
		require.NoError(t, err)
		assert.True(t, got.UploadedAt.IsZero())

		got.Like()
		require.NoError(t, repo.Update(ctx, got, etag))

		current, _, err := repo.GetByID(ctx, "1700000000001")
		require.NoError(t, err)
		assert.Equal(t, 1, current.Likes)
		assert.Empty(t, current.UploadedAtString())
	})
}

func TestPhotoRepo_Delete(t *testing.T) {
	blobs := storage.NewMemoryStorage("")
	repo := objectstore.NewPhotoRepo(blobs, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entity.NewPhoto("20", "t", "", "", "", "u", "alice")))

	require.NoError(t, repo.Delete(ctx, "20"))
	assert.ErrorIs(t, repo.Delete(ctx, "20"), domain.ErrPhotoNotFound)

	exists, err := blobs.Exists(ctx, "20.json")
	require.NoError(t, err)
	assert.False(t, exists)
}
