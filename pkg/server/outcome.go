package server

import (
	"errors"
	"net/http"

	"github.com/marmos91/staticd/pkg/loader"
)

// outcomeKind enumerates every way a request can end. The emit step is an
// exhaustive switch over these cases; adding a kind without handling it
// there is a bug, so the set is kept deliberately closed.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeNotFound
	outcomeMethodNotAllowed
	outcomeOverloaded
	outcomeInternalError
)

// outcome is the per-request result before translation to a wire response.
// Constructed once per request and consumed immediately by emit.
type outcome struct {
	kind outcomeKind

	// body, contentType and gzipped are meaningful only for outcomeSuccess.
	body        []byte
	contentType string
	gzipped     bool

	// cause is meaningful only for outcomeInternalError. It is logged
	// server-side and never exposed to the client.
	cause error
}

func successOutcome(file *loader.File, contentType string) outcome {
	return outcome{
		kind:        outcomeSuccess,
		body:        file.Body,
		contentType: contentType,
		gzipped:     file.Gzipped,
	}
}

func notFoundOutcome() outcome {
	return outcome{kind: outcomeNotFound}
}

func methodNotAllowedOutcome() outcome {
	return outcome{kind: outcomeMethodNotAllowed}
}

func overloadedOutcome() outcome {
	return outcome{kind: outcomeOverloaded}
}

func internalErrorOutcome(cause error) outcome {
	return outcome{kind: outcomeInternalError, cause: cause}
}

// translateLoadError converts a loader failure into its outcome.
func translateLoadError(err error) outcome {
	if errors.Is(err, loader.ErrNotFound) {
		return notFoundOutcome()
	}
	return internalErrorOutcome(err)
}

// status maps an outcome to its HTTP status code.
func (o outcome) status() int {
	switch o.kind {
	case outcomeSuccess:
		return http.StatusOK
	case outcomeNotFound:
		return http.StatusNotFound
	case outcomeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case outcomeOverloaded:
		return http.StatusServiceUnavailable
	case outcomeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
