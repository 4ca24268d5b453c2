package services

import (
	"context"
	"testing"

	"storenews/app/models"
	"storenews/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPictureURL(t *testing.T) {
	ctx := context.Background()
	repo := mock.NewPictureRepository()
	require.NoError(t, repo.Create(&models.Picture{MimeType: "image/png", SeoFilename: "jane-doe"}))
	require.NoError(t, repo.Create(&models.Picture{MimeType: "image/pjpeg"}))

	service := NewPictureService(repo, "http://localhost/images/")

	tests := []struct {
		name        string
		pictureID   int
		size        int
		showDefault bool
		defaultType models.PictureType
		want        string
	}{
		{"stored picture", 1, 120, true, models.PictureTypeAvatar, "http://localhost/images/thumbs/0000001_jane-doe_120.png"},
		{"no seo name", 2, 80, true, models.PictureTypeEntity, "http://localhost/images/thumbs/0000002_80.jpg"},
		{"original size", 1, 0, true, models.PictureTypeEntity, "http://localhost/images/thumbs/0000001_jane-doe.png"},
		{"default avatar", 0, 120, true, models.PictureTypeAvatar, "http://localhost/images/thumbs/default-avatar_120.jpg"},
		{"default image", 42, 300, true, models.PictureTypeEntity, "http://localhost/images/thumbs/default-image_300.png"},
		{"default at original size", 0, 0, true, models.PictureTypeAvatar, "http://localhost/images/default-avatar.jpg"},
		{"no default", 0, 120, false, models.PictureTypeAvatar, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := service.GetPictureURL(ctx, tt.pictureID, tt.size, tt.showDefault, tt.defaultType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, url)
		})
	}
}
