package services

import (
	"buysell_server/lib"
	"buysell_server/structs/tables"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockImageRepo struct {
	mock.Mock
}

func (m *mockImageRepo) FindByID(ctx context.Context, id int64) (*tables.Image, error) {
	args := m.Called(ctx, id)
	img, _ := args.Get(0).(*tables.Image)
	return img, args.Error(1)
}

func TestImageService_GetImage(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo := new(mockImageRepo)
		repo.On("FindByID", ctx, int64(4)).Return(&tables.Image{ID: 4, ContentType: "image/jpeg", Bytes: []byte{0xff, 0xd8}}, nil)

		img, err := NewImageService(testLogger(), repo).GetImage(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", img.ContentType)
		assert.Len(t, img.Bytes, 2)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(mockImageRepo)
		repo.On("FindByID", ctx, int64(4)).Return(nil, nil)

		_, err := NewImageService(testLogger(), repo).GetImage(ctx, 4)

		assert.ErrorIs(t, err, lib.ErrNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(mockImageRepo)
		repo.On("FindByID", ctx, int64(4)).Return(nil, errors.New("boom"))

		_, err := NewImageService(testLogger(), repo).GetImage(ctx, 4)

		require.Error(t, err)
		assert.NotErrorIs(t, err, lib.ErrNotFound)
	})
}
