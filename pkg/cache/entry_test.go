package cache

import (
	"net/http"
	"testing"
)

func TestCacheEntry_Size(t *testing.T) {
	tests := []struct {
		name  string
		entry *CacheEntry
		want  int
	}{
		{
			name:  "nil entry",
			entry: nil,
			want:  0,
		},
		{
			name:  "empty body",
			entry: &CacheEntry{},
			want:  0,
		},
		{
			name:  "body",
			entry: &CacheEntry{Data: []byte("body{}")},
			want:  6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCacheEntry_Clone(t *testing.T) {
	orig := &CacheEntry{
		URL:        "/static/style.css",
		Data:       []byte("body{}"),
		StatusCode: 200,
		Headers:    http.Header{"Content-Type": []string{"text/css"}},
	}

	c := orig.Clone()
	c.Data[0] = 'X'
	c.Headers.Set("Content-Type", "text/plain")

	if string(orig.Data) != "body{}" {
		t.Errorf("Clone shares body with original: %q", orig.Data)
	}
	if orig.Headers.Get("Content-Type") != "text/css" {
		t.Errorf("Clone shares headers with original: %v", orig.Headers)
	}
	if c.URL != orig.URL || c.StatusCode != orig.StatusCode {
		t.Errorf("Clone = %+v, want fields of %+v", c, orig)
	}

	var nilEntry *CacheEntry
	if nilEntry.Clone() != nil {
		t.Error("Clone of nil entry should be nil")
	}
}
