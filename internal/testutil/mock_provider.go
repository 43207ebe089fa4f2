// Package testutil provides test doubles for provider HTTP APIs.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockProvider is an httptest-backed stand-in for an upstream provider API.
// Handlers are registered per path; unregistered paths return 404. Request
// counts are tracked per path so tests can assert how often an endpoint was
// hit.
type MockProvider struct {
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests map[string]int
}

// NewMockProvider starts an empty mock provider. Callers must Close it.
func NewMockProvider() *MockProvider {
	m := &MockProvider{
		handlers: make(map[string]http.HandlerFunc),
		requests: make(map[string]int),
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.dispatch))
	return m
}

// URL returns the mock server's base URL for client configuration.
func (m *MockProvider) URL() string {
	return m.server.URL
}

// Close shuts the underlying server down.
func (m *MockProvider) Close() {
	m.server.Close()
}

// Handle registers a handler for an exact request path.
func (m *MockProvider) Handle(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// HandleJSON registers a handler that answers with a fixed status and JSON
// body.
func (m *MockProvider) HandleJSON(path string, status int, body string) {
	m.Handle(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// HandleError registers a handler that always fails with the given status.
func (m *MockProvider) HandleError(path string, status int) {
	m.Handle(path, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, http.StatusText(status), status)
	})
}

// RequestCount returns how many requests have hit the given path.
func (m *MockProvider) RequestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[path]
}

// TotalRequests returns the number of requests served across all paths.
func (m *MockProvider) TotalRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.requests {
		total += n
	}
	return total
}

// Reset clears handlers and counters.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = make(map[string]http.HandlerFunc)
	m.requests = make(map[string]int)
}

func (m *MockProvider) dispatch(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests[r.URL.Path]++
	handler, ok := m.handlers[r.URL.Path]
	m.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}
