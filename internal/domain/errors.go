package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for availability fetches
var (
	// ErrNetwork indicates the backend could not be reached or answered with a failure status
	ErrNetwork = errors.New("network error")

	// ErrDecode indicates the response body did not have the expected shape
	ErrDecode = errors.New("decode error")
)

// NetworkError describes a transport-level failure: timeout, refused
// connection, or a non-2xx response.
type NetworkError struct {
	Op         string // e.g. "GET"
	URL        string
	StatusCode int    // 0 when no response was received
	Message    string // backend-provided error text, if any
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Op, e.URL, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d", e.Op, e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: network error", e.Op, e.URL)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// Detail returns the part of the error worth showing to a user.
func (e *NetworkError) Detail() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode != 0:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "sin conexión"
	}
}

// DecodeError describes a response body that could not be parsed into a Snapshot.
type DecodeError struct {
	Field string // offending field, empty when the body as a whole is invalid
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode %q: %s", e.Field, e.cause())
	}
	return "decode: " + e.cause()
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Detail returns the part of the error worth showing to a user.
func (e *DecodeError) Detail() string {
	if e.Field != "" {
		return e.Field + ": " + e.cause()
	}
	return e.cause()
}

func (e *DecodeError) cause() string {
	if e.Err == nil {
		return "respuesta inválida"
	}
	return e.Err.Error()
}

// DisplayMessage converts a fetch error into the human-readable text shown in the UI.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return "Error de red: " + netErr.Detail()
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return "Error de datos: " + decErr.Detail()
	}
	return "Error: " + err.Error()
}
