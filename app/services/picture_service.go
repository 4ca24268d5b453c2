package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storenews/app/models"
	"storenews/app/repositories"
)

const (
	defaultImageFileName  = "default-image.png"
	defaultAvatarFileName = "default-avatar.jpg"
)

var mimeExtensions = map[string]string{
	"image/bmp":     "bmp",
	"image/gif":     "gif",
	"image/jpeg":    "jpeg",
	"image/pjpeg":   "jpg",
	"image/png":     "png",
	"image/x-png":   "png",
	"image/tiff":    "tiff",
	"image/x-icon":  "ico",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// PictureService builds public URLs for stored pictures.
type PictureService struct {
	repo      repositories.PictureRepository
	imagesURL string
}

// NewPictureService creates a PictureService serving thumbnails under imagesURL.
func NewPictureService(repo repositories.PictureRepository, imagesURL string) *PictureService {
	return &PictureService{
		repo:      repo,
		imagesURL: strings.TrimRight(imagesURL, "/"),
	}
}

// GetPictureURL returns the thumbnail URL of a picture at targetSize pixels (0 for
// the original size). A missing picture yields the default image of defaultType,
// or "" when showDefault is false.
func (s *PictureService) GetPictureURL(ctx context.Context, pictureID, targetSize int, showDefault bool, defaultType models.PictureType) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if pictureID > 0 {
		picture, err := s.repo.GetByID(pictureID)
		if err == nil {
			return s.thumbURL(thumbFileName(fmt.Sprintf("%07d", picture.ID), picture.SeoFilename, targetSize, extension(picture.MimeType))), nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return "", err
		}
	}

	if !showDefault {
		return "", nil
	}
	return s.defaultPictureURL(targetSize, defaultType), nil
}

func (s *PictureService) defaultPictureURL(targetSize int, defaultType models.PictureType) string {
	name := defaultImageFileName
	if defaultType == models.PictureTypeAvatar {
		name = defaultAvatarFileName
	}
	if targetSize == 0 {
		return s.imagesURL + "/" + name
	}

	dot := strings.LastIndex(name, ".")
	return s.thumbURL(thumbFileName(name[:dot], "", targetSize, name[dot+1:]))
}

func (s *PictureService) thumbURL(fileName string) string {
	return s.imagesURL + "/thumbs/" + fileName
}

func thumbFileName(base, seoName string, targetSize int, ext string) string {
	var b strings.Builder
	b.WriteString(base)
	if seoName != "" {
		b.WriteString("_")
		b.WriteString(seoName)
	}
	if targetSize > 0 {
		fmt.Fprintf(&b, "_%d", targetSize)
	}
	b.WriteString(".")
	b.WriteString(ext)
	return b.String()
}

func extension(mimeType string) string {
	if ext, ok := mimeExtensions[strings.ToLower(mimeType)]; ok {
		return ext
	}
	return "jpeg"
}
