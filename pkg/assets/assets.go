// Package assets defines the Asset List pre-cached at install time.
//
// The list is maintained by hand. Deployments that need a different set of
// files can point the service at a YAML manifest instead of rebuilding:
//
//	assets:
//	  - /
//	  - /static/style.css
package assets

import (
	"errors"
	"fmt"
	"os"

	"github.com/Sternrassler/offline-cache/pkg/cache"
	"gopkg.in/yaml.v3"
)

// ErrEmptyList is returned when a manifest lists no assets.
var ErrEmptyList = errors.New("asset list is empty")

// List is an ordered, immutable sequence of root-relative URLs.
type List struct {
	urls []string
}

// Default returns the built-in Asset List.
func Default() List {
	return List{urls: []string{
		"/",
		"/static/style.css",
		"/static/logoX.PNG",
		"/static/assistant-avatar.png",
		"/static/manifest.json",
	}}
}

// New validates urls and returns them as a List.
// Every URL must be root-relative and appear at most once.
func New(urls ...string) (List, error) {
	if len(urls) == 0 {
		return List{}, ErrEmptyList
	}

	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		key, err := cache.ParseKey(raw)
		if err != nil {
			return List{}, fmt.Errorf("invalid asset: %w", err)
		}
		if raw == "" || raw[0] != '/' {
			return List{}, fmt.Errorf("invalid asset %q: must start with /", raw)
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			return List{}, fmt.Errorf("duplicate asset %q", raw)
		}
		seen[k] = struct{}{}
		out = append(out, raw)
	}
	return List{urls: out}, nil
}

// manifest is the on-disk YAML layout.
type manifest struct {
	Assets []string `yaml:"assets"`
}

// LoadFile reads a YAML manifest.
func LoadFile(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return List{}, fmt.Errorf("read asset manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML manifest.
func Parse(data []byte) (List, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return List{}, fmt.Errorf("parse asset manifest: %w", err)
	}
	return New(m.Assets...)
}

// URLs returns a copy of the list.
func (l List) URLs() []string {
	return append([]string(nil), l.urls...)
}

// Len returns the number of assets.
func (l List) Len() int {
	return len(l.urls)
}
