package coinranking_common

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorKind is the closed set of network failure categories
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNoConnectivity
	KindTimeout
	KindServerError
	KindDecodingFailed
	KindTransportError
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoConnectivity:
		return "no_connectivity"
	case KindTimeout:
		return "timeout"
	case KindServerError:
		return "server_error"
	case KindDecodingFailed:
		return "decoding_failed"
	case KindTransportError:
		return "transport_error"
	case KindUnknown:
		return "unknown"
	}
	return "unknown"
}

// Sentinels for errors.Is matching against a NetworkError kind
var (
	ErrNoConnectivity = &NetworkError{Kind: KindNoConnectivity}
	ErrTimeout        = &NetworkError{Kind: KindTimeout}
	ErrServer         = &NetworkError{Kind: KindServerError}
	ErrDecodingFailed = &NetworkError{Kind: KindDecodingFailed}
	ErrTransport      = &NetworkError{Kind: KindTransportError}
	ErrUnknown        = &NetworkError{Kind: KindUnknown}
)

// NetworkError is a classified request failure.
// StatusCode is only set for KindServerError, Description for the
// decoding, transport and unknown kinds.
type NetworkError struct {
	Kind        ErrorKind
	StatusCode  int
	Description string
	cause       error
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case KindNoConnectivity:
		return "No internet connection available."
	case KindTimeout:
		return "Request timed out. Please try again."
	case KindServerError:
		return fmt.Sprintf("Server error with status code: %d", e.StatusCode)
	case KindDecodingFailed:
		return fmt.Sprintf("Failed to parse response: %s", e.Description)
	case KindTransportError:
		return fmt.Sprintf("Network error: %s", e.Description)
	case KindUnknown:
		return fmt.Sprintf("Unknown error: %s", e.Description)
	}
	return fmt.Sprintf("Unknown error: %s", e.Description)
}

func (e *NetworkError) Unwrap() error { return e.cause }

// Is matches any NetworkError of the same kind
func (e *NetworkError) Is(target error) bool {
	t, ok := target.(*NetworkError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewServerError(statusCode int) *NetworkError {
	return &NetworkError{Kind: KindServerError, StatusCode: statusCode}
}

func NewDecodingError(err error) *NetworkError {
	return &NetworkError{Kind: KindDecodingFailed, Description: err.Error(), cause: err}
}

func NewNoConnectivityError() *NetworkError {
	return &NetworkError{Kind: KindNoConnectivity}
}

// ClassifyError maps a transport level error to a NetworkError.
// Errors that are already classified are returned unchanged.
func ClassifyError(err error) *NetworkError {
	if err == nil {
		return nil
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &NetworkError{Kind: KindTimeout, cause: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
		return &NetworkError{Kind: KindNoConnectivity, cause: err}
	}
	if errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return &NetworkError{Kind: KindNoConnectivity, cause: err}
	}

	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return &NetworkError{Kind: KindTimeout, cause: err}
		}
		return &NetworkError{Kind: KindTransportError, Description: err.Error(), cause: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &NetworkError{Kind: KindTransportError, Description: err.Error(), cause: err}
	}

	return &NetworkError{Kind: KindUnknown, Description: err.Error(), cause: err}
}

// StatusLabel is the metrics label for a request outcome
func StatusLabel(err error) string {
	if err == nil {
		return "success"
	}
	return ClassifyError(err).Kind.String()
}

// MessageFor renders err for display. Classified network errors use their
// own message, anything else is reported as unexpected.
func MessageFor(err error) string {
	if err == nil {
		return ""
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	return fmt.Sprintf("Unexpected error: %s", err.Error())
}
