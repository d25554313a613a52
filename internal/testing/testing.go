// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/desertthunder/listmerge/internal/models"
)

// StubSource is a test double for [services.ListSource] returning fixed lists or a fixed error.
type StubSource struct {
	Lists []models.List
	Err   error

	mu    sync.Mutex
	calls int
}

func (s *StubSource) Load(ctx context.Context) ([]models.List, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.List, len(s.Lists))
	for i, l := range s.Lists {
		out[i] = l.Clone()
	}
	return out, nil
}

func (s *StubSource) Name() string { return "stub" }

// Calls reports how many times Load ran.
func (s *StubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// SampleLists returns [{1,[A,B]}, {2,[C]}].
func SampleLists() []models.List {
	return []models.List{
		{Number: 1, Items: []models.Item{
			{ID: "A", Name: "Alpha", Description: "first item"},
			{ID: "B", Name: "Bravo", Description: "second item"},
		}},
		{Number: 2, Items: []models.Item{
			{ID: "C", Name: "Charlie", Description: "third item"},
		}},
	}
}

// SamplePayload is the wire form of [SampleLists].
const SamplePayload = `{"lists":[
	{"id":"A","name":"Alpha","description":"first item","list_number":1},
	{"id":"C","name":"Charlie","description":"third item","list_number":2},
	{"id":"B","name":"Bravo","description":"second item","list_number":1}
]}`

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// MustWriteFile writes content to name inside a fresh temp dir and returns the path.
func MustWriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
