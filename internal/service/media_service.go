package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/hilit308-creator/autosocial/internal/repository"
)

// allowedMediaTypes are the formats every downstream platform can take.
var allowedMediaTypes = map[string]struct{}{
	"mp4": {}, "mov": {}, "jpeg": {}, "png": {}, "jpg": {},
}

type MediaService interface {
	AttachMedia(ctx context.Context, postID string, file *multipart.FileHeader) (mediaURL, mediaType string, err error)
	RemoveMedia(ctx context.Context, postID string) error
}

type mediaService struct {
	pr repository.PostRepository
	r2 *R2Service
}

func NewMediaService(pr repository.PostRepository, r2 *R2Service) MediaService {
	return &mediaService{
		pr: pr,
		r2: r2,
	}
}

// AttachMedia sniffs the file's real type, uploads it to object storage
// under a random key, and points the post at the public URL.
func (s *mediaService) AttachMedia(ctx context.Context, postID string, file *multipart.FileHeader) (string, string, error) {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return "", "", err
	}
	if post == nil {
		return "", "", ErrNotFound
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", "", fmt.Errorf("%w: unsupported file type", ErrValidation)
	}
	if _, ok := allowedMediaTypes[fileType.Extension]; !ok {
		return "", "", fmt.Errorf("%w: file type %s is not allowed", ErrValidation, fileType.Extension)
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", "", err
	}

	if err := s.r2.UploadToR2(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		return "", "", fmt.Errorf("error uploading file: %w", err)
	}

	mediaURL := s.r2.PublicURL(key)
	if err := s.pr.SetMedia(ctx, postID, mediaURL, fileType.MIME.Value); err != nil {
		return "", "", fmt.Errorf("error saving media reference: %w", err)
	}

	return mediaURL, fileType.MIME.Value, nil
}

func (s *mediaService) RemoveMedia(ctx context.Context, postID string) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	return s.pr.SetMedia(ctx, postID, "", "")
}
