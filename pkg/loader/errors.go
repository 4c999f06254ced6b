package loader

import "errors"

// These errors give the request handler a consistent way to translate load
// failures into HTTP status codes without inspecting platform error strings.
//
// Usage pattern:
//
//	file, err := loader.Load(path, wantGzip)
//	if err != nil {
//	    if errors.Is(err, loader.ErrNotFound) {
//	        return http.StatusNotFound
//	    }
//	    return http.StatusInternalServerError
//	}
//
// Implementations wrap these errors with additional context:
//
//	return fmt.Errorf("open %s: %w", path, loader.ErrNotFound)
var (
	// ErrNotFound indicates the resolved path does not exist on disk.
	//
	// This covers the implicit fallback targets too: a request for a
	// directory without an index.html, or for an extensionless path whose
	// ".html" companion is missing, ends up here.
	//
	// HTTP mapping: 404 Not Found. Expected and common; not logged as an
	// error by callers.
	ErrNotFound = errors.New("file not found")
)
