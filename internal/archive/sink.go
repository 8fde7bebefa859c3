// Package archive stores exported reports, either in a local directory or in
// an S3-compatible bucket.
package archive

import (
	"context"
	"errors"
)

var ErrEmptyName = errors.New("archive: empty object name")

// Sink stores one named document and returns where it can be found: a file
// path or a URL.
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}
