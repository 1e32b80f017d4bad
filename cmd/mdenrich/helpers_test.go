package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alnah/go-mdenrich"
)

// testEnv returns an Environment writing to buffers with no MDENRICH_*
// variables.
func testEnv(environ ...string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Stdout:  &stdout,
		Stderr:  &stderr,
		Environ: func() []string { return environ },
	}, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockRenderer struct {
	mu     sync.Mutex
	inputs []mdenrich.Input
	result *mdenrich.Result
	err    error
}

func (m *mockRenderer) record(input mdenrich.Input) (*mdenrich.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &mdenrich.Result{HTML: "<p>" + input.Markdown + "</p>", Enriched: input.Markdown}, nil
}

func (m *mockRenderer) Render(_ context.Context, input mdenrich.Input) (*mdenrich.Result, error) {
	return m.record(input)
}

func (m *mockRenderer) Enrich(_ context.Context, input mdenrich.Input) (*mdenrich.Result, error) {
	return m.record(input)
}

func (m *mockRenderer) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

type mockPool struct {
	renderer   *mockRenderer
	size       int
	acquireErr error
}

func (p *mockPool) Acquire(context.Context) (Renderer, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.renderer, nil
}

func (p *mockPool) Release(Renderer) {}

func (p *mockPool) Size() int { return p.size }

type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
	puts int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mockCache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.puts++
	return nil
}
