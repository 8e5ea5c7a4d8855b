package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"CareerGo/internal/config"
)

// LocalStorage writes files under a base directory. Used in development and
// tests where no bucket is available.
type LocalStorage struct {
	basePath  string
	serverURL string
}

func NewLocalStorage(cfg *config.AppConfig) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.LocalStoragePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: cfg.LocalStoragePath, serverURL: cfg.ServerURL}, nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	path := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(s.basePath, filepath.FromSlash(key)))
}

func (s *LocalStorage) URL(key string) string {
	return strings.TrimSuffix(s.serverURL, "/") + "/uploads/" + key
}
