package model

import (
	"context"
	"io"
)

// Storage is the blob store holding book cover images.
type Storage interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a previously returned public URL back to its object
	// key. The second result is false for foreign or empty URLs.
	KeyFromURL(url string) (string, bool)
}
