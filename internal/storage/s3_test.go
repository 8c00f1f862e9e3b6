package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fitsync/backend/internal/config"
)

func TestPresignedDownloadURLUsesCustomEndpoint(t *testing.T) {
	store, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
		BucketName:      "exports",
	})
	require.NoError(t, err)

	raw, err := store.GeneratePresignedDownloadURL(context.Background(), "exports/u1/meal/plan.json", 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "localhost:9000", u.Host)
	require.True(t, strings.HasPrefix(u.Path, "/exports/exports/u1/meal/plan.json"))
	require.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
}

func TestNewS3StorageRequiresBucket(t *testing.T) {
	_, err := NewS3Storage(context.Background(), config.S3Config{Region: "us-east-1"})
	require.Error(t, err)
}

func TestNoopStorageIsNotConfigured(t *testing.T) {
	var s ObjectStorage = NoopStorage{}
	require.ErrorIs(t, s.PutObject(context.Background(), "k", "application/json", nil), ErrNotConfigured)
	_, err := s.GeneratePresignedDownloadURL(context.Background(), "k", time.Minute)
	require.ErrorIs(t, err, ErrNotConfigured)
}
