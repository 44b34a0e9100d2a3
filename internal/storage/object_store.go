package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore persists uploaded images on a public bucket. Upload returns the
// public URL of the stored object; KeyFromURL re-derives the object key from
// a previously returned URL so the object can be deleted later.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(publicURL string) (string, bool)
}

// MinioStore implements ObjectStore for MinIO/S3 compatible storage.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore connects to the object store and ensures the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (m *MinioStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, key), nil
}

func (m *MinioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (m *MinioStore) KeyFromURL(publicURL string) (string, bool) {
	return KeyFromURL(publicURL, m.publicURL, m.bucket)
}

// KeyFromURL strips "<base>/<bucket>/" from a public object URL. It returns
// false when the URL does not belong to this store.
func KeyFromURL(publicURL, base, bucket string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", strings.TrimSuffix(base, "/"), bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// ArticleImageKey builds a unique object key for an article image, keeping
// the original file extension.
func ArticleImageKey(filename string) string {
	return fmt.Sprintf("NewsApp/Article_Images/%s%s", uuid.New().String(), path.Ext(filename))
}

// ProfilePictureKey builds a unique object key for a profile picture.
func ProfilePictureKey(filename string) string {
	return fmt.Sprintf("NewsApp/Profile_Pictures/%s%s", uuid.New().String(), path.Ext(filename))
}
