package cache

import (
	"net/http"
	"time"
)

// CacheEntry represents a stored response.
type CacheEntry struct {
	// URL is the key the response was stored under
	URL string `json:"url"`

	// Data is the response body
	Data []byte `json:"data"`

	// StatusCode is the HTTP status code of the cached response
	StatusCode int `json:"status_code"`

	// Headers are the response headers
	Headers http.Header `json:"headers"`

	// CachedAt is when we cached this response
	CachedAt time.Time `json:"cached_at"`
}

// Size returns the body size in bytes.
func (e *CacheEntry) Size() int {
	if e == nil {
		return 0
	}
	return len(e.Data)
}

// Clone returns a deep copy so callers can't mutate stored state.
func (e *CacheEntry) Clone() *CacheEntry {
	if e == nil {
		return nil
	}
	c := *e
	if e.Data != nil {
		c.Data = append([]byte(nil), e.Data...)
	}
	c.Headers = e.Headers.Clone()
	return &c
}
