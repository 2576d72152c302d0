package dummystore

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/elimu-lms/elimu/core"
)

// ErrUploadFailed is returned once per key registered with FailNext.
var ErrUploadFailed = errors.New("upload failed")

// Service keeps uploads in memory. It stands in for the real object
// store in tests and when no storage credentials are configured.
type Service struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failNext map[string]bool
	Keys     []string // upload order
}

var _ core.ObjectStore = (*Service)(nil)

func NewService() *Service {
	return &Service{
		objects:  make(map[string][]byte),
		failNext: make(map[string]bool),
	}
}

// FailNext makes the next upload whose key contains frag fail.
func (svc *Service) FailNext(frag string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.failNext[frag] = true
}

func (svc *Service) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	for frag := range svc.failNext {
		if frag != "" && strings.Contains(key, frag) {
			delete(svc.failNext, frag)
			return "", errors.Wrapf(ErrUploadFailed, "uploading %q", key)
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", errors.Wrapf(err, "reading %q", key)
	}
	svc.objects[key] = data
	svc.Keys = append(svc.Keys, key)
	return key, nil
}

// Object returns a stored upload by key.
func (svc *Service) Object(key string) ([]byte, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	data, ok := svc.objects[key]
	return data, ok
}
