// Package testutil provides testing utilities for the offline cache.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock origin path.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockOrigin is a configurable origin server that counts the requests it
// receives. Unknown paths answer 404.
type MockOrigin struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	requests map[string]int
	total    int
}

// NewMockOrigin creates and starts a mock origin server.
func NewMockOrigin() *MockOrigin {
	mock := &MockOrigin{
		handlers: make(map[string]http.HandlerFunc),
		requests: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.total++
		mock.requests[r.URL.Path]++
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		if exists {
			handler(w, r)
			return
		}
		http.NotFound(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockOrigin) URL() string {
	return m.server.URL
}

// Client returns an HTTP client wired to the server.
func (m *MockOrigin) Client() *http.Client {
	return m.server.Client()
}

// Close shuts down the mock server.
func (m *MockOrigin) Close() {
	m.server.Close()
}

// Reset clears all request counters.
func (m *MockOrigin) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total = 0
	m.requests = make(map[string]int)
}

// SetHandler sets a custom handler for a specific path.
func (m *MockOrigin) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockOrigin) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetAsset serves body with contentType and status 200.
func (m *MockOrigin) SetAsset(path, contentType, body string) {
	m.SetResponse(path, NewAssetResponse(contentType, body))
}

// RequestCount returns the number of requests made to the server.
func (m *MockOrigin) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}

// PathCount returns the number of requests made for path.
func (m *MockOrigin) PathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests[path]
}

// NewAssetResponse creates a 200 OK response for a static asset.
func NewAssetResponse(contentType, body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type":  contentType,
			"Cache-Control": "public, max-age=3600",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       "internal server error",
		Headers: map[string]string{
			"Content-Type": "text/plain; charset=utf-8",
		},
	}
}

// NewDefaultSite registers the default asset set with small bodies.
func NewDefaultSite(m *MockOrigin) {
	m.SetAsset("/", "text/html; charset=utf-8", "<html>isbot</html>")
	m.SetAsset("/static/style.css", "text/css", "body{margin:0}")
	m.SetAsset("/static/logoX.PNG", "image/png", "\x89PNG-logo")
	m.SetAsset("/static/assistant-avatar.png", "image/png", "\x89PNG-avatar")
	m.SetAsset("/static/manifest.json", "application/manifest+json", `{"name":"isbot"}`)
}
