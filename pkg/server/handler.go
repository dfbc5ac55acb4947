package server

import (
	"fmt"
	"net"
	"net/url"

	"oneshot/pkg/wire"
)

// Request is the normalized request handed to the application handler.
// It is built once per cycle and not retained afterward.
type Request struct {
	Method   string
	URL      *url.URL
	Header   *wire.Header
	Body     wire.Body
	RemoteIP string
}

// Handler is the application boundary: one request in, one response
// out. A nil response with a nil error means "no opinion" and yields a
// default 200 empty reply.
type Handler interface {
	Handle(*Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(*Request) (*Response, error)

func (f HandlerFunc) Handle(r *Request) (*Response, error) { return f(r) }

// buildRequest assembles the absolute URL (scheme fixed to http) from
// the parsed target, preferring the Host header and falling back to the
// configured host:port, and attaches the peer IP.
func buildRequest(head *wire.Head, body wire.Body, remoteAddr, fallbackHost string) (*Request, error) {
	host := head.Headers.Get("Host")
	if host == "" {
		host = fallbackHost
	}
	u, err := url.Parse("http://" + host + head.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: building url: %v", wire.ErrInvalidHead, err)
	}
	return &Request{
		Method:   head.Method,
		URL:      u,
		Header:   head.Headers,
		Body:     body,
		RemoteIP: peerIP(remoteAddr),
	}, nil
}

func peerIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
