package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ImageStore keeps the original menu photo and returns a URL to it.
type ImageStore interface {
	Save(ctx context.Context, userID uuid.UUID, data []byte, mimeType string) (string, error)
}

type noopImageStore struct{}

// NewNoopImageStore is used when IMAGE_STORE is none; uploads carry no image URL.
func NewNoopImageStore() ImageStore {
	return noopImageStore{}
}

func (noopImageStore) Save(ctx context.Context, userID uuid.UUID, data []byte, mimeType string) (string, error) {
	return "", nil
}

func imageExtension(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	if parts := strings.SplitN(mimeType, "/", 2); len(parts) == 2 && parts[1] != "" {
		return "." + parts[1]
	}
	return ""
}
