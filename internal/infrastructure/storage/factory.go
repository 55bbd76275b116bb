package storage

import (
	"context"
	"fmt"

	"github.com/protrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New builds the archive selected by cfg.Driver and makes sure its bucket
// exists
func New(ctx context.Context, cfg config.StorageConfig, l *zap.Logger) (Archive, error) {
	switch cfg.Driver {
	case config.StorageS3:
		a, err := NewS3Archive(ctx, cfg, WithLogger(l))
		if err != nil {
			return nil, err
		}
		return a, a.EnsureBucket(ctx)
	case config.StorageMinIO:
		a, err := NewMinioArchive(cfg, WithLogger(l))
		if err != nil {
			return nil, err
		}
		return a, a.EnsureBucket(ctx)
	case config.StorageNone, "":
		return NewMemoryArchive(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
