package cache

import (
	"fmt"
	"net/url"
	"strings"
)

// CacheKey identifies a stored response by request URL.
// Scheme, host and fragment are not part of the key: assets are always
// root-relative to the single origin being cached.
type CacheKey struct {
	// Path is the escaped request path (e.g., "/static/style.css")
	Path string

	// RawQuery is the encoded query without '?', kept byte for byte
	RawQuery string
}

// KeyFromURL builds the key for a request URL.
func KeyFromURL(u *url.URL) CacheKey {
	if u == nil {
		return CacheKey{Path: "/"}
	}
	return CacheKey{
		Path:     u.EscapedPath(),
		RawQuery: u.RawQuery,
	}
}

// ParseKey parses a root-relative URL such as "/static/app.js?v=2".
func ParseKey(raw string) (CacheKey, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return CacheKey{}, fmt.Errorf("parse url %q: %w", raw, err)
	}
	if u.IsAbs() || u.Host != "" {
		return CacheKey{}, fmt.Errorf("url %q must be root-relative", raw)
	}
	return KeyFromURL(u), nil
}

// String generates the key string. The query is not normalised: "?b=2&a=1"
// and "?a=1&b=2" are different keys.
//
// Example:
//
//	/static/app.js?v=2&lang=en
func (k CacheKey) String() string {
	path := k.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if k.RawQuery == "" {
		return path
	}
	return path + "?" + k.RawQuery
}
