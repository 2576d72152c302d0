// Package testutil holds shared test helpers.
package testutil

import (
	"sync"
	"testing"

	"github.com/elimu-lms/elimu/storage/kv"
)

// Notice is a single recorded notification.
type Notice struct {
	Kind    string // "success" | "error"
	Title   string
	Message string
}

// NotifierRecorder records notifications for assertions.
type NotifierRecorder struct {
	mu      sync.Mutex
	Notices []Notice
}

func (n *NotifierRecorder) Success(title, message string) {
	n.record(Notice{Kind: "success", Title: title, Message: message})
}

func (n *NotifierRecorder) Error(title, message string) {
	n.record(Notice{Kind: "error", Title: title, Message: message})
}

func (n *NotifierRecorder) record(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, notice)
}

func (n *NotifierRecorder) Last() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Notices) == 0 {
		return Notice{}, false
	}
	return n.Notices[len(n.Notices)-1], true
}

// OpenKV opens a throwaway kv store under the test's temp dir.
func OpenKV(t *testing.T) *kv.Store {
	t.Helper()
	store, err := kv.Open(t.TempDir())
	if err != nil {
		t.Fatalf("OpenKV() failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
