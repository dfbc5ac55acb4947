// Package httpx bridges the oneshot handler contract and the net/http
// ecosystem so stdlib handlers, routers and middleware run on top of
// the raw codec.
package httpx

import (
	"bytes"
	"fmt"
	"net/http"

	"oneshot/pkg/server"
	"oneshot/pkg/wire"
)

// Adapt turns an http.Handler into a server.Handler. The oneshot
// request is rebuilt as an *http.Request; the handler's output is
// captured in memory and returned as a buffered response. Streamed
// request bodies are passed through to the handler's Body untouched.
func Adapt(h http.Handler) server.HandlerFunc {
	return func(req *server.Request) (*server.Response, error) {
		hr, err := http.NewRequest(req.Method, req.URL.String(), req.Body.Reader())
		if err != nil {
			return nil, fmt.Errorf("adapt request: %w", err)
		}
		req.Header.Each(func(name, value string) {
			hr.Header.Add(name, value)
		})
		if req.Body.Kind() == wire.BodyBuffered {
			hr.ContentLength = int64(len(req.Body.Bytes()))
		}
		hr.RemoteAddr = req.RemoteIP

		rec := &recorder{header: make(http.Header)}
		h.ServeHTTP(rec, hr)
		return rec.response(), nil
	}
}

// recorder captures an http.Handler's output for conversion into a
// *server.Response.
type recorder struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.buf.Write(p)
}

func (r *recorder) response() *server.Response {
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	resp := server.NewResponse(status)
	for name, values := range r.header {
		for _, v := range values {
			resp.Header.Set(name, v)
		}
	}
	resp.Body = wire.BufferedBody(r.buf.Bytes())
	return resp
}
