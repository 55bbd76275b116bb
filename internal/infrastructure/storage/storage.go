// Package storage archives uploaded spreadsheets to object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"
	"time"
)

// ErrEmptyKey is returned when an object key is missing
var ErrEmptyKey = errors.New("storage key is required")

// Archive stores uploaded files for audit. Implementations must be safe for
// concurrent use.
type Archive interface {
	// Put stores size bytes from r under key and returns the object location
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Exists reports whether key is stored
	Exists(ctx context.Context, key string) (bool, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey builds "<prefix><kind>/<yyyy/mm/dd>/<unix-ms>-<filename>" with
// the filename reduced to a safe character set
func ObjectKey(prefix, kind, filename string, now time.Time) string {
	name := unsafeChars.ReplaceAllString(path.Base(filename), "_")
	name = strings.Trim(name, "_")
	if name == "" || name == "." {
		name = "upload"
	}
	return fmt.Sprintf("%s%s/%s/%d-%s", prefix, kind, now.UTC().Format("2006/01/02"), now.UnixMilli(), name)
}
