package resolve

import (
	"mime"
	"path/filepath"
	"strings"
)

// mimeTypes maps well-known file extensions to their MIME types. This is an
// extension lookup, not content sniffing: a file's bytes are never inspected.
var mimeTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"txt":  "text/plain",
	"md":   "text/plain",
	"html": "text/html",
	"xml":  "application/xml",
	"json": "application/json",
	"css":  "text/css",
}

// ContentType returns the MIME type for a path based on its extension.
//
// Extensions outside the table are attempted as literal MIME values, which
// succeeds only for extensions that already form a valid type/subtype pair.
// Files without an extension carry no content type; the second return value
// reports whether a type was resolved.
func ContentType(path string) (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}

	if mt, ok := mimeTypes[ext]; ok {
		return mt, true
	}

	// ParseMediaType also accepts bare tokens (it is shared with
	// Content-Disposition parsing); require a type/subtype pair.
	if mt, _, err := mime.ParseMediaType(ext); err == nil && strings.Contains(mt, "/") {
		return mt, true
	}

	return "", false
}
