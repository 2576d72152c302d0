package core

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore is any service that can store binary uploads (course
// images, lesson videos) and hand back the final object key.
type ObjectStore interface {
	// Upload stores body under key and returns the final key.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ObjectKey builds a storage key under dir from the original filename,
// prefixed with the creation timestamp. A blank filename gets a random
// name instead.
func ObjectKey(dir, filename string) string {
	if filename == "" {
		filename = uuid.NewString()
	}
	filename = strings.ReplaceAll(path.Base(filename), " ", "_")
	return fmt.Sprintf("%s/%d-%s", strings.TrimRight(dir, "/"), time.Now().UnixMilli(), filename)
}
