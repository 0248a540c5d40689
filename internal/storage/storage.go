// Package storage keeps uploaded profile images outside the user document.
package storage

import (
	"context"
	"io"
)

// Uploader stores an object and returns the path or URL clients use to
// fetch it.
type Uploader interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (storedPath string, err error)
}
