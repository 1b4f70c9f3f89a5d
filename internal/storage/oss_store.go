package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/jjss-seva/registration-service/internal/config"
)

// OSSStore stores photos in an Alibaba Cloud OSS bucket.
type OSSStore struct {
	bucket        *oss.Bucket
	endpoint      string
	bucketName    string
	publicBaseURL string
}

// NewOSSStore connects to the configured bucket.
func NewOSSStore(cfg config.StorageConfig) (*OSSStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("incomplete object storage configuration")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &OSSStore{
		bucket:        bucket,
		endpoint:      cfg.Endpoint,
		bucketName:    cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *OSSStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}

	if err := s.bucket.PutObject(key, body, opts...); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.publicURL(key), nil
}

// Delete removes the object. Missing objects are not an error.
func (s *OSSStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *OSSStore) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return strings.TrimRight(s.publicBaseURL, "/") + "/" + key
	}

	endpoint := s.endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, endpoint, key)
}
