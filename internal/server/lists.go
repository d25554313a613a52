package server

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/desertthunder/listmerge/internal/services"
)

//go:embed fixtures/lists.json
var DefaultPayload []byte

// ListsHandler serves a fixed list payload on a single path.
type ListsHandler struct {
	path    string
	mu      sync.RWMutex
	payload []byte
	failing atomic.Bool
	served  atomic.Int64
}

// NewListsHandler validates payload and returns a handler for path.
func NewListsHandler(path string, payload []byte) (*ListsHandler, error) {
	if _, err := services.DecodePayload(payload); err != nil {
		return nil, fmt.Errorf("invalid fixture payload: %w", err)
	}
	return &ListsHandler{path: path, payload: payload}, nil
}

// Routes returns the HTTP routes this handler serves.
func (h *ListsHandler) Routes() []string {
	return []string{h.path}
}

// SetFailing makes subsequent requests answer 503.
func (h *ListsHandler) SetFailing(failing bool) {
	h.failing.Store(failing)
}

// SetPayload swaps the payload after validating it.
func (h *ListsHandler) SetPayload(payload []byte) error {
	if _, err := services.DecodePayload(payload); err != nil {
		return fmt.Errorf("invalid fixture payload: %w", err)
	}
	h.mu.Lock()
	h.payload = payload
	h.mu.Unlock()
	return nil
}

// Served reports how many successful responses were written.
func (h *ListsHandler) Served() int64 {
	return h.served.Load()
}

func (h *ListsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.failing.Load() {
		http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
		return
	}

	h.mu.RLock()
	payload := h.payload
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
	h.served.Add(1)
}

// HealthHandler answers {"status":"ok"}.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
}

// NewFixtureRouter wires the lists handler, a health check and the standard middleware.
func NewFixtureRouter(lists *ListsHandler, mw ...Middleware) *BasicRouter {
	router := NewBasicRouter()
	router.Use(mw...)
	router.Handler(lists)
	router.Handle(http.MethodGet, "/health", HealthHandler())
	return router
}
