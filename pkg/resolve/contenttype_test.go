package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType_KnownExtensions(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"icon.png", "image/png"},
		{"anim.gif", "image/gif"},
		{"notes.txt", "text/plain"},
		{"README.md", "text/plain"},
		{"index.html", "text/html"},
		{"feed.xml", "application/xml"},
		{"data.json", "application/json"},
		{"style.css", "text/css"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ContentType(tt.path)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentType_NoExtension(t *testing.T) {
	_, ok := ContentType("Makefile")
	assert.False(t, ok)
}

func TestContentType_UnknownExtension(t *testing.T) {
	// "woff2" is not a complete MIME value, so no type is attached.
	_, ok := ContentType("font.woff2")
	assert.False(t, ok)

	_, ok = ContentType("archive.tar.gz")
	assert.False(t, ok)
}
