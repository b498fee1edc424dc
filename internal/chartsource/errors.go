package chartsource

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/five82/lectern/internal/chordpro"
)

// ErrorKind classifies a failed retrieval.
type ErrorKind int

const (
	// NoError is the zero kind; it is never attached to a failure.
	NoError ErrorKind = iota
	// NetworkError is a transport failure. It is the only retryable kind.
	NetworkError
	// NotFound means the chart does not exist at its source.
	NotFound
	// ParseError means the chart text could not be tokenized.
	ParseError
	// Unknown covers every other failure.
	Unknown
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "none"
	case NetworkError:
		return "network"
	case NotFound:
		return "not_found"
	case ParseError:
		return "parse"
	default:
		return "unknown"
	}
}

// Retryable reports whether retrying the same source could succeed.
func (k ErrorKind) Retryable() bool {
	return k == NetworkError
}

// Message is the text shown to the operator in place of the chart.
func (k ErrorKind) Message() string {
	switch k {
	case NetworkError:
		return "Network error. Please check your connection and try again."
	case NotFound:
		return "Chord sheet not available"
	case ParseError:
		return "Invalid chord format. Please check the ChordPro file."
	case NoError:
		return ""
	default:
		return "Failed to load chord sheet"
	}
}

// FetchError is returned by Client.Fetch.
type FetchError struct {
	Kind ErrorKind
	URL  string
	// Status is the HTTP status code, zero for transport failures.
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Classify maps any retrieval or parse error to a kind.
func Classify(err error) ErrorKind {
	if err == nil {
		return NoError
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	var parseErr *chordpro.ParseError
	if errors.As(err, &parseErr) {
		return ParseError
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NetworkError
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return NetworkError
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return NetworkError
	}
	return Unknown
}
