package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantKey string
		wantOK  bool
	}{
		{
			name:    "virtual-hosted bucket URL",
			url:     "https://media-bucket.s3.us-east-1.amazonaws.com/event-media/abc.png",
			wantKey: "event-media/abc.png",
			wantOK:  true,
		},
		{
			name:    "path-style URL",
			url:     "https://s3.example.org/media-bucket/program-media/xyz.jpg",
			wantKey: "program-media/xyz.jpg",
			wantOK:  true,
		},
		{
			name:    "custom endpoint path-style",
			url:     "https://storage.local:9000/media-bucket/event-media/q.webp",
			wantKey: "event-media/q.webp",
			wantOK:  true,
		},
		{
			name:    "bare prefix match on unknown host layout",
			url:     "https://cdn.example.org/some/nesting/event-media/deep/file.gif",
			wantKey: "event-media/deep/file.gif",
			wantOK:  true,
		},
		{
			name:   "unparseable URL mutates nothing",
			url:    "https://example.org/wallpapers/cat.png",
			wantOK: false,
		},
		{
			name:   "empty path",
			url:    "https://example.org",
			wantOK: false,
		},
		{
			name:   "prefix with no key after it",
			url:    "https://cdn.example.org/event-media/",
			wantOK: false,
		},
		{
			name:   "not a URL",
			url:    "::::",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := KeyFromURL("media-bucket", tt.url)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKey, key)
			}
		})
	}
}
