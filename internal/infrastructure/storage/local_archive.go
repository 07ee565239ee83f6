package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	approvalapp "github.com/chatforge/backend/internal/application/approval"
	intakeapp "github.com/chatforge/backend/internal/application/intake"
	infraconfig "github.com/chatforge/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure LocalArchiveStore satisfies the application-side interfaces
var (
	_ approvalapp.ArchiveStore = (*LocalArchiveStore)(nil)
	_ intakeapp.ArchiveStore   = (*LocalArchiveStore)(nil)
)

// LocalArchiveStore writes archive objects to the local filesystem.
// Used for development and single-node deployments without a bucket.
type LocalArchiveStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalArchiveStore creates a LocalArchiveStore rooted at dir
func NewLocalArchiveStore(dir string, logger *zap.Logger) (*LocalArchiveStore, error) {
	if dir == "" {
		return nil, errors.New("archive directory is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalArchiveStore{dir: dir, logger: logger}, nil
}

// Put writes an archive object under the given key. Slashes in the key
// become subdirectories; path escapes are rejected.
func (s *LocalArchiveStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if key == "" {
		return errors.New("archive key is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cleaned := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("invalid archive key %q", key)
	}

	path := filepath.Join(s.dir, cleaned)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create archive subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive object %s: %w", key, err)
	}

	s.logger.Debug("archive object written",
		zap.String("path", path),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)))
	return nil
}

// NewArchiveStore selects the archive backend from configuration: S3
// when a bucket is configured, the local directory otherwise.
func NewArchiveStore(cfg *infraconfig.StorageConfig, logger *zap.Logger) (approvalapp.ArchiveStore, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket != "" {
		return NewS3ArchiveStore(cfg, WithLogger(logger))
	}
	return NewLocalArchiveStore(cfg.LocalDir, logger)
}
