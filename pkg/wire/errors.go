package wire

import "errors"

var (
	// ErrHeaderTooLarge indicates the head exceeded the configured size cap
	// before the CRLFCRLF terminator was seen.
	ErrHeaderTooLarge = errors.New("request head too large")
	// ErrInvalidMethod indicates the first bytes of the stream do not start
	// with a recognized HTTP method.
	ErrInvalidMethod = errors.New("invalid request method")
	// ErrInvalidHead indicates a malformed start line or header line.
	ErrInvalidHead = errors.New("malformed request head")
	// ErrConnClosed indicates the peer closed the connection before the
	// head terminator arrived.
	ErrConnClosed = errors.New("connection closed prematurely")
	// ErrBodyTooLarge indicates a declared Content-Length above the
	// configured body size cap.
	ErrBodyTooLarge = errors.New("request body too large")
)
