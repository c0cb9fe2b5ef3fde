package model

import (
	"context"
	"io"
)

// Object is a stored blob with its metadata. Callers close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Storage is an object store for user avatars.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) (Object, error)
	Delete(ctx context.Context, key string) error
}
