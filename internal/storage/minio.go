package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/audiopanel/backend/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioStorage(ctx context.Context, cfg *config.Config) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket: %w", err)
		}
	}

	// Buckets are private by default; the stored references are plain public
	// URLs, so anonymous read must be granted explicitly.
	if err := client.SetBucketPolicy(ctx, cfg.MinioBucket, publicReadPolicy(cfg.MinioBucket)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}

	return &MinioStorage{
		client:  client,
		bucket:  cfg.MinioBucket,
		baseURL: fmt.Sprintf("%s://%s/%s/", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

func (s *MinioStorage) Store(ctx context.Context, r io.Reader, size int64, contentType, originalName string) (string, error) {
	name := uuid.NewString() + filepath.Ext(originalName)

	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": originalName,
		},
	})
	if err != nil {
		return "", err
	}

	// Bucket policy makes objects publicly readable; the reference is the
	// public URL clients load directly.
	return s.baseURL + name, nil
}

func (s *MinioStorage) Delete(ctx context.Context, ref string) error {
	name := objectName(ref)
	if name == "" {
		return fmt.Errorf("invalid object reference %q", ref)
	}
	return s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
}

// publicReadPolicy grants anonymous s3:GetObject on every object in the bucket.
func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/*"]
			}
		]
	}`, bucket)
}

// objectName extracts the object key from either a full public URL or a bare name.
func objectName(ref string) string {
	if strings.Contains(ref, "://") {
		return path.Base(ref)
	}
	return strings.TrimPrefix(ref, URLPrefix)
}
