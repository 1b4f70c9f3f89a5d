package storage

import (
	"context"
	"io"
)

// ObjectStore is the object-storage collaborator holding member photos.
// Upload returns the publicly fetchable URL of the stored object.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
