package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/classpulse/backend/pkg/config"
)

// SnapshotStore archives lecture snapshot images in MinIO under
// lectures/{id}/snapshots/ and hands out presigned URLs for the dashboard.
type SnapshotStore struct {
	client    *minio.Client
	bucket    string
	publicURL string // public URL when MinIO sits behind a reverse proxy
}

// NewSnapshotStore creates the store and ensures the bucket exists
func NewSnapshotStore(cfg *config.StorageConfig) (*SnapshotStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &SnapshotStore{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
	}

	if err := store.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return store, nil
}

func (s *SnapshotStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// SaveSnapshot stores one snapshot image and returns its object key
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, lectureID string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectName := fmt.Sprintf("lectures/%s/snapshots/%d%s", lectureID, time.Now().UnixMilli(), extensionFor(contentType))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return objectName, nil
}

// ListSnapshots lists the stored snapshot object keys for a lecture
func (s *SnapshotStore) ListSnapshots(ctx context.Context, lectureID string) ([]string, error) {
	prefix := fmt.Sprintf("lectures/%s/snapshots/", lectureID)

	var keys []string
	objectCh := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("error listing snapshots: %w", object.Err)
		}
		keys = append(keys, object.Key)
	}
	return keys, nil
}

// SnapshotURL returns a presigned URL for one snapshot object
func (s *SnapshotStore) SnapshotURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	// When MinIO is behind a reverse proxy, swap the internal endpoint for
	// the public one while keeping path and signature query intact.
	if s.publicURL != "" {
		urlStr := url.String()
		bucketPos := len(url.Scheme) + 3 + len(url.Host)
		if bucketPos < len(urlStr) {
			return s.publicURL + urlStr[bucketPos:], nil
		}
	}
	return url.String(), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
