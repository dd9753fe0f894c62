package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var ErrValidation = errors.New("validation error")

const (
	signedURLTTL = 5 * time.Minute
	maxImageSize = 10 << 20
)

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	storage ObjectStorage
	now     func() time.Time
}

func NewService(storage ObjectStorage) *Service {
	return &Service{
		storage: storage,
		now:     time.Now,
	}
}

// UploadPlaceImage stores an image under a place-scoped key and returns the
// object key for the place document to carry.
func (s *Service) UploadPlaceImage(ctx context.Context, placeID, fileName, contentType string, body io.Reader, size int64) (string, error) {
	if strings.TrimSpace(placeID) == "" || body == nil || size <= 0 || size > maxImageSize {
		return "", ErrValidation
	}
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey, err := buildImageObjectKey(placeID, fileName, s.now())
	if err != nil {
		return "", fmt.Errorf("build object key: %w", err)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.PutObject(ctx, objectKey, body, size, contentType); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return objectKey, nil
}

// ImageURL returns a presigned GET URL for a stored image key. An empty key
// resolves to an empty URL so callers need no special case for places
// without an image.
func (s *Service) ImageURL(ctx context.Context, objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", nil
	}
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	url, err := s.storage.PresignGet(ctx, objectKey, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign image url: %w", err)
	}

	return url, nil
}

func (s *Service) DeleteImage(ctx context.Context, objectKey string) error {
	if strings.TrimSpace(objectKey) == "" || s.storage == nil {
		return nil
	}
	if err := s.storage.Delete(ctx, objectKey); err != nil {
		return fmt.Errorf("delete image object: %w", err)
	}
	return nil
}

func buildImageObjectKey(placeID, fileName string, now time.Time) (string, error) {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".bin"
	}

	return fmt.Sprintf("places/%s/%d_%s%s", placeID, now.Unix(), hex.EncodeToString(suffix), ext), nil
}
