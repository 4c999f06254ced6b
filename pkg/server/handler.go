package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/marmos91/staticd/internal/logger"
	"github.com/marmos91/staticd/pkg/loader"
	"github.com/marmos91/staticd/pkg/pool"
	"github.com/marmos91/staticd/pkg/resolve"
)

// handleGet drives one request through the pipeline: resolve the path,
// dispatch the blocking load onto the worker pool, await its future, and
// translate the result into a wire response. The goroutine serving the
// request suspends only at the future wait; all disk and compression work
// happens on pool workers.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	requestPath := strings.TrimPrefix(r.URL.Path, "/")
	resolved := resolve.Resolve(s.root, requestPath)
	wantGzip := acceptsGzip(r.Header.Values("Accept-Encoding"))

	future, err := s.pool.Submit(func() (*loader.File, error) {
		return s.loader.Load(resolved, wantGzip)
	})
	s.metrics.RecordQueueDepth(s.pool.QueueDepth())
	if err != nil {
		if errors.Is(err, pool.ErrQueueFull) {
			s.emit(w, overloadedOutcome())
			return
		}
		s.emit(w, internalErrorOutcome(err))
		return
	}

	file, err := future.Wait(r.Context())
	if werr := r.Context().Err(); werr != nil {
		// The client went away while the load was in flight. The job still
		// runs to completion on its worker; there is just nobody left to
		// receive the response. This is a transport concern, not an
		// application failure, so nothing is written or translated.
		logger.Debug("request for %s abandoned: %v", r.URL.Path, werr)
		return
	}
	if err != nil {
		s.emit(w, translateLoadError(err))
		return
	}

	contentType, _ := resolve.ContentType(resolved)
	s.emit(w, successOutcome(file, contentType))
}

// handleMethodNotAllowed rejects every non-GET method with an empty 405,
// independent of path validity.
func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.emit(w, methodNotAllowedOutcome())
}

// emit translates an outcome into the response.
//
// Content-Length is always present and equals the bytes placed on the wire:
// for gzip-encoded bodies that is the compressed length, not the original
// file size. Content-Type appears only when resolved, Content-Encoding only
// when gzip was applied.
func (s *Server) emit(w http.ResponseWriter, o outcome) {
	switch o.kind {
	case outcomeSuccess:
		if o.contentType != "" {
			w.Header().Set("Content-Type", o.contentType)
		} else {
			// A nil entry stops net/http from sniffing a Content-Type in:
			// unresolved types send no header at all.
			w.Header()["Content-Type"] = nil
		}
		if o.gzipped {
			w.Header().Set("Content-Encoding", "gzip")
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(o.body)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(o.body); err != nil {
			// Transport failure: the connection layer is broken, not the
			// application. Propagates to net/http via the aborted write.
			logger.Debug("response write failed: %v", err)
		}

	case outcomeInternalError:
		// The cause stays server-side; the client sees only the status.
		logger.Error("request failed: %v", o.cause)
		writeEmpty(w, o.status())

	case outcomeNotFound, outcomeMethodNotAllowed, outcomeOverloaded:
		writeEmpty(w, o.status())
	}
}

// writeEmpty sends a bodyless response with an explicit zero Content-Length.
func writeEmpty(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(status)
}

// acceptsGzip reports whether any Accept-Encoding token equals "gzip".
//
// Quality values are not interpreted: an advertised "gzip;q=0" still counts
// as support, mirroring the reference behavior of matching tokens only.
func acceptsGzip(headers []string) bool {
	for _, header := range headers {
		for _, part := range strings.Split(header, ",") {
			token := part
			if i := strings.IndexByte(token, ';'); i >= 0 {
				token = token[:i]
			}
			if strings.EqualFold(strings.TrimSpace(token), "gzip") {
				return true
			}
		}
	}
	return false
}
