package wire

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// BodyKind discriminates the body variants.
type BodyKind int

const (
	BodyAbsent BodyKind = iota
	BodyBuffered
	BodyStream
)

// Body is the tagged body variant shared by the request and response
// paths: absent, fully buffered bytes, or a live byte stream.
type Body struct {
	kind BodyKind
	buf  []byte
	src  io.Reader
}

// AbsentBody returns the no-body variant.
func AbsentBody() Body { return Body{kind: BodyAbsent} }

// BufferedBody returns a body fully held in memory.
func BufferedBody(b []byte) Body { return Body{kind: BodyBuffered, buf: b} }

// StreamBody returns a body backed by a live byte source.
func StreamBody(r io.Reader) Body { return Body{kind: BodyStream, src: r} }

func (b Body) Kind() BodyKind { return b.kind }

// Bytes returns the buffered payload; nil for other kinds.
func (b Body) Bytes() []byte { return b.buf }

// Stream returns the live source; nil for other kinds.
func (b Body) Stream() io.Reader { return b.src }

// Reader returns a uniform io.Reader view over any body kind.
func (b Body) Reader() io.Reader {
	switch b.kind {
	case BodyBuffered:
		return bytes.NewReader(b.buf)
	case BodyStream:
		return b.src
	default:
		return bytes.NewReader(nil)
	}
}

// bufferedTypes are the content types read fully into memory before the
// handler runs. Everything else, multipart included, stays a stream.
var bufferedTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"text/plain",
}

func isBufferedType(contentType string) bool {
	for _, t := range bufferedTypes {
		if strings.HasPrefix(contentType, t) {
			return true
		}
	}
	return false
}

// ResolveBody decides body handling for a parsed head. GET and HEAD
// carry no body. Whitelisted content types are buffered: up to a valid
// declared Content-Length (rejected with ErrBodyTooLarge above
// maxBodySize, before any body byte is read) or maxBodySize when none
// is declared. The buffer is filled by a single transport read; a short
// read keeps only what arrived. Every other content type is handed
// through as a stream of the connection's remaining bytes, with no size
// enforcement.
func ResolveBody(r io.Reader, head *Head, maxBodySize int64) (Body, error) {
	if head.Method == "GET" || head.Method == "HEAD" {
		return AbsentBody(), nil
	}
	if !isBufferedType(head.Headers.Get("Content-Type")) {
		return StreamBody(r), nil
	}
	want := maxBodySize
	if n, ok := head.ContentLength(); ok {
		if n > maxBodySize {
			return Body{}, fmt.Errorf("%w: declared %d, cap %d", ErrBodyTooLarge, n, maxBodySize)
		}
		want = n
	}
	buf := make([]byte, want)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return Body{}, fmt.Errorf("read body: %w", err)
	}
	return BufferedBody(buf[:n]), nil
}
