package modelapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// writeModelFile creates a small model payload in a temp dir and returns its path.
func writeModelFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// newTestClient builds a client against base whose logs go to the returned buffer.
func newTestClient(t *testing.T, base string) (*Client, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	c, err := New(Options{BaseURL: base, Logger: &l})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, &buf
}

// countingServer serves h and counts requests.
func countingServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}
