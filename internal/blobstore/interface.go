package blobstore

import (
	"context"
	"io"
)

// PutResult describes one persisted blob payload.
type PutResult struct {
	Key         string
	SizeBytes   int64
	ContentType string
}

// Store is the byte-storage abstraction used by the document service. Keys
// are caller-chosen relative paths ({ownerId}/{documentId}.{ext}); the
// implementation is otherwise opaque.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (PutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a blob object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// MakePublic returns a stable public URL for a stored key.
	MakePublic(ctx context.Context, key string) (string, error)
}
