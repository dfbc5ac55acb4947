package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/valyala/bytebufferpool"

	"oneshot/pkg/wire"
)

// Response is what the application handler produces. Consumed exactly
// once by the response writer.
type Response struct {
	StatusCode int
	StatusText string
	Header     *wire.Header
	Body       wire.Body
}

// NewResponse returns an empty-bodied response with the given status.
func NewResponse(code int) *Response {
	return &Response{StatusCode: code, Header: wire.NewHeader()}
}

// Text returns a text/plain response with a buffered body.
func Text(code int, body string) *Response {
	resp := NewResponse(code)
	resp.Header.Set("Content-Type", "text/plain")
	resp.Body = wire.BufferedBody([]byte(body))
	return resp
}

// JSON returns an application/json response with the marshaled value.
func JSON(code int, v any) (*Response, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	resp := NewResponse(code)
	resp.Header.Set("Content-Type", "application/json")
	resp.Body = wire.BufferedBody(data)
	return resp, nil
}

func (r *Response) reason() string {
	if r.StatusText != "" {
		return r.StatusText
	}
	if s := http.StatusText(r.StatusCode); s != "" {
		return s
	}
	return "Unknown"
}

// writeResponse serializes resp: status line, every header except the
// Connection family, exactly one forced Connection: close, blank line,
// body. Stream bodies are piped through untouched; anything else is
// materialized first so Content-Length is exact. Returns bytes written.
func writeResponse(w io.Writer, resp *Response) (int64, error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	streaming := resp.Body.Kind() == wire.BodyStream

	fmt.Fprintf(bb, "HTTP/1.1 %d %s\r\n", resp.StatusCode, resp.reason())
	if resp.Header != nil {
		resp.Header.Each(func(name, value string) {
			lower := strings.ToLower(name)
			if strings.HasPrefix(lower, "connection") {
				return
			}
			if !streaming && lower == "content-length" {
				return // overridden with the materialized size below
			}
			fmt.Fprintf(bb, "%s: %s\r\n", name, value)
		})
	}

	if streaming {
		bb.WriteString("Connection: close\r\n\r\n")
		n, err := w.Write(bb.B)
		if err != nil {
			return int64(n), err
		}
		copied, err := io.Copy(w, resp.Body.Stream())
		return int64(n) + copied, err
	}

	payload := resp.Body.Bytes()
	fmt.Fprintf(bb, "Content-Length: %d\r\n", len(payload))
	bb.WriteString("Connection: close\r\n\r\n")
	bb.Write(payload)
	n, err := w.Write(bb.B)
	return int64(n), err
}
