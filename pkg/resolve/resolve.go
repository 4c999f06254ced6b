// Package resolve maps request paths onto the filesystem.
//
// Resolution is purely lexical: the request path is walked segment by
// segment against the configured root, with ".." popping at most what the
// request itself pushed. An attacker can therefore never address anything
// above the root, no matter how many ".." segments the request contains.
// The only I/O performed is a single stat to detect directories.
package resolve

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolve turns a request-relative path into an absolute path confined
// beneath root.
//
// Rules, applied in order:
//   - "." segments and empty segments (from repeated slashes) are dropped
//   - ".." pops the last accumulated segment; popping an empty accumulation
//     is a no-op, so traversal above root is unreachable
//   - any other segment is appended verbatim, with no decoding or
//     normalization of special characters
//   - if the result names an existing directory, "index.html" is appended
//   - if the final component has no extension, ".html" is appended; a name
//     that is only a leading dot (".bashrc") counts as extensionless, so
//     hidden files are never addressable directly
//
// The empty request path resolves to the root itself and, the root being a
// directory, yields "<root>/index.html".
func Resolve(root, requestPath string) string {
	var segments []string
	for _, segment := range strings.Split(requestPath, "/") {
		switch segment {
		case "", ".":
			// skip
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, segment)
		}
	}

	resolved := filepath.Join(append([]string{root}, segments...)...)

	if info, err := os.Stat(resolved); err == nil && info.IsDir() {
		resolved = filepath.Join(resolved, "index.html")
	}
	if !hasExtension(resolved) {
		resolved += ".html"
	}

	return resolved
}

// hasExtension reports whether the final path component carries an
// extension. The dot must follow at least one other character: ".bashrc" is
// a hidden name, not an empty name with a ".bashrc" extension, which is
// where filepath.Ext disagrees.
func hasExtension(path string) bool {
	return strings.LastIndexByte(filepath.Base(path), '.') > 0
}
