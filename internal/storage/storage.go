// Package storage abstracts where uploaded cover images live. A Store call
// returns an opaque reference (a local path or a public URL) that is persisted
// on the product record and handed back to clients as-is.
package storage

import (
	"context"
	"io"
)

type Storage interface {
	// Store writes the file contents and returns a retrievable reference.
	Store(ctx context.Context, r io.Reader, size int64, contentType, originalName string) (string, error)

	// Delete removes the file behind a previously returned reference.
	// Callers treat failures as non-fatal; a crash between a DB write and
	// the file delete may leave an orphaned file behind.
	Delete(ctx context.Context, ref string) error
}
