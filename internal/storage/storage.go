package storage

import (
	"context"
	"fmt"
	"io"

	"CareerGo/internal/config"
)

// Storage is the blob store used for logos, brochures and profile images.
type Storage interface {
	// Save stores a file under the given key and returns its public URL.
	Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// Delete removes the file stored under the given key.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for a stored key.
	URL(key string) string
}

func NewStorage(cfg *config.AppConfig) (Storage, error) {
	switch cfg.StorageType {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}
