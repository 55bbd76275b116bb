package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/protrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MinioArchive stores objects on a MinIO server
type MinioArchive struct {
	client *minio.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewMinioArchive creates a MinIO-backed archive from configuration
func NewMinioArchive(cfg config.StorageConfig, opts ...Option) (*MinioArchive, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("storage endpoint is required for minio")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	o := buildOptions(opts)
	return &MinioArchive{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: o.logger.Named("minio_archive"),
	}, nil
}

// EnsureBucket creates the bucket if it does not exist
func (a *MinioArchive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	a.logger.Info("creating archive bucket", zap.String("bucket", a.bucket))
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
		if minio.ToErrorResponse(err).Code == "BucketAlreadyOwnedByYou" {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Put implements Archive
func (a *MinioArchive) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	info, err := a.client.PutObject(ctx, a.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}
	a.logger.Debug("object archived", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return fmt.Sprintf("minio://%s/%s", a.bucket, info.Key), nil
}

// Exists implements Archive
func (a *MinioArchive) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	_, err := a.client.StatObject(ctx, a.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

var _ Archive = (*MinioArchive)(nil)
