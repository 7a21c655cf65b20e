package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"furniture_back_end/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// SnapshotStore archives rendered snapshots and hands out time-limited links.
type SnapshotStore interface {
	Put(ctx context.Context, key string, png []byte) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type MinioStore struct {
	client *minio.Client
	bucket string
}

// ConnectMinio returns nil, nil when no endpoint is configured.
func ConnectMinio(ctx context.Context, cfg config.MinIOConfig, log *zap.Logger) (*MinioStore, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		log.Info("🪣 bucket created", zap.String("bucket", cfg.Bucket))
	}
	log.Info("✅ connected to MinIO", zap.String("endpoint", cfg.Endpoint))
	return &MinioStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, key string, png []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(png), int64(len(png)),
		minio.PutObjectOptions{ContentType: "image/png"})
	return err
}

func (s *MinioStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
