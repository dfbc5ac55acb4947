package server

import (
	"errors"

	"oneshot/pkg/wire"
)

var (
	// ErrHandlerFailure wraps an error or panic raised by the
	// application handler.
	ErrHandlerFailure = errors.New("handler failure")
	// ErrWriteFailure wraps an error while sending the response.
	ErrWriteFailure = errors.New("response write failure")
)

// errKind maps a cycle error to its metrics label.
func errKind(err error) string {
	switch {
	case errors.Is(err, wire.ErrHeaderTooLarge):
		return "header_too_large"
	case errors.Is(err, wire.ErrInvalidMethod):
		return "invalid_method"
	case errors.Is(err, wire.ErrInvalidHead):
		return "invalid_head"
	case errors.Is(err, wire.ErrConnClosed):
		return "conn_closed"
	case errors.Is(err, wire.ErrBodyTooLarge):
		return "body_too_large"
	case errors.Is(err, ErrHandlerFailure):
		return "handler_failure"
	case errors.Is(err, ErrWriteFailure):
		return "write_failure"
	default:
		return "other"
	}
}
