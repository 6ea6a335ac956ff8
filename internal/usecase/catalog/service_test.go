package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/ayes009/photoshare-webapp/internal/domain/entity"
	"github.com/ayes009/photoshare-webapp/internal/mocks"
	"github.com/ayes009/photoshare-webapp/internal/usecase/catalog"
)

func TestService_List(t *testing.T) {
	t.Run("returns repository photos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		svc := catalog.NewService(photoRepo, zap.NewNop())

		photos := []entity.Photo{
			*entity.NewPhoto("2", "b", "", "", "", "u2", "alice"),
			*entity.NewPhoto("1", "a", "", "", "", "u1", "alice"),
		}
		photoRepo.EXPECT().List(gomock.Any()).Return(photos, nil)

		got, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, photos, got)
	})

	t.Run("list failure yields empty catalog", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		svc := catalog.NewService(photoRepo, zap.NewNop())

		photoRepo.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection reset"))

		got, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("cancelled request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		photoRepo := mocks.NewMockPhotoRepository(ctrl)
		svc := catalog.NewService(photoRepo, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		photoRepo.EXPECT().List(gomock.Any()).Return(nil, context.Canceled)

		_, err := svc.List(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
