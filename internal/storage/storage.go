package storage

import (
	"context"
	"errors"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ErrNotConfigured is returned by NoopStorage when no bucket is set up.
var ErrNotConfigured = errors.New("object storage is not configured")

// ObjectStorage holds exported documents and hands out temporary download links.
type ObjectStorage interface {
	// PutObject uploads body under objectKey, replacing any existing object.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// NoopStorage rejects every operation with ErrNotConfigured.
type NoopStorage struct{}

func (NoopStorage) PutObject(context.Context, string, string, []byte) error { return ErrNotConfigured }

func (NoopStorage) GeneratePresignedDownloadURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrNotConfigured
}

func (NoopStorage) DeleteObject(context.Context, string) error { return ErrNotConfigured }
