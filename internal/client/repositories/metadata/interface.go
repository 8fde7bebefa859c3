// Package metadata is the client's durable key/value storage. Values are
// JSON documents; the session store keeps its single record here.
package metadata

import (
	"context"
	"errors"
)

// ErrCorrupt is returned when a stored value is not valid JSON for the
// requested type.
var ErrCorrupt = errors.New("corrupt metadata value")

// Repository stores JSON documents by key.
type Repository interface {
	// Load decodes the value under key into v and reports whether the key
	// existed.
	Load(ctx context.Context, key string, v any) (bool, error)
	Save(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, key string) error
}
