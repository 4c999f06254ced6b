// Package loader reads file contents for in-flight requests, applying gzip
// compression when the client supports it and the payload is large enough to
// benefit.
//
// Load performs blocking filesystem and CPU work and is meant to run on a
// worker pool, never on the request-accepting goroutines. It keeps no state
// between calls: every request reads the file again.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// MinGzipSize is the uncompressed size, in bytes, a file must exceed before
// gzip is considered. Compressing tiny payloads costs more than it saves.
const MinGzipSize = 1024

// File is the payload produced for a successfully loaded file.
type File struct {
	// Body holds the bytes to place on the wire, compressed when Gzipped.
	Body []byte

	// Size is the uncompressed length read from file metadata.
	Size int64

	// Gzipped reports whether Body holds gzip-compressed bytes.
	Gzipped bool
}

// Loader reads files below a fixed root. The zero threshold means
// MinGzipSize.
type Loader struct {
	minGzipSize int64
}

// New creates a Loader. minGzipSize <= 0 selects the MinGzipSize default.
func New(minGzipSize int64) *Loader {
	if minGzipSize <= 0 {
		minGzipSize = MinGzipSize
	}
	return &Loader{minGzipSize: minGzipSize}
}

// Load opens and fully reads the file at path.
//
// When wantGzip is true and the file's uncompressed size exceeds the
// threshold, the body is gzip-compressed at the fastest compression level.
// The returned File records which representation Body holds.
//
// A missing file yields an error wrapping ErrNotFound; any other open, read
// or compression failure is returned as-is for the caller to treat as an
// internal error. Reads always run to end-of-file, never truncating.
func (l *Loader) Load(path string, wantGzip bool) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	size := info.Size()

	raw := make([]byte, 0, size)
	buf := bytes.NewBuffer(raw)
	if _, err := io.Copy(buf, f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	file := &File{
		Body: buf.Bytes(),
		Size: size,
	}

	if wantGzip && size > l.minGzipSize {
		compressed, err := compress(file.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		file.Body = compressed
		file.Gzipped = true
	}

	return file, nil
}

// compress gzips data at BestSpeed, favoring worker throughput over ratio.
func compress(data []byte) ([]byte, error) {
	var out bytes.Buffer

	gz, err := gzip.NewWriterLevel(&out, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
