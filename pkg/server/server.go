// Package server is a single-cycle HTTP/1.1 server: every accepted
// connection carries exactly one request/response cycle and is then
// closed. There is no keep-alive, no pipelining and no connection
// reuse; the codec in pkg/wire does all parsing directly on the raw
// byte stream.
package server

import (
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"oneshot/pkg/logger"
	"oneshot/pkg/metrics"
)

// Defaults for zero-valued Options fields.
const (
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 3000
	DefaultMaxBodySize   = 1 << 20  // 1 MiB
	DefaultMaxHeaderSize = 16 << 10 // 16 KiB
)

// Logf is the logging capability handed to the server. It is never a
// singleton the server reaches for; callers pass one in (or rely on
// EnableLog wiring the package logger).
type Logf func(msg string, args ...any)

// Options configures a Server. The value is immutable for the server
// lifetime and shared read-only across connection goroutines.
type Options struct {
	Host          string
	Port          int
	MaxBodySize   int64
	MaxHeaderSize int
	EnableLog     bool

	// Optional hardening, all off by default to keep the original
	// observable behavior: a peer that sends nothing holds its
	// goroutine open indefinitely, and concurrency is unbounded.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RateRPS      float64 // per-IP accepted connections per second
	RateBurst    int

	// Log overrides the logging sink. Nil with EnableLog=false means
	// no logging at all.
	Log Logf
}

// Server accepts connections and runs one request/response cycle per
// connection, each on its own goroutine.
type Server struct {
	opts         Options
	handler      Handler
	logf         Logf
	limiter      *ipLimiter
	fallbackHost string

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// New builds a Server, filling zero-valued options with defaults.
func New(h Handler, opts Options) *Server {
	if opts.Host == "" {
		opts.Host = DefaultHost
	}
	if opts.Port == 0 {
		opts.Port = DefaultPort
	}
	if opts.MaxBodySize == 0 {
		opts.MaxBodySize = DefaultMaxBodySize
	}
	if opts.MaxHeaderSize == 0 {
		opts.MaxHeaderSize = DefaultMaxHeaderSize
	}
	logf := opts.Log
	if logf == nil {
		if opts.EnableLog {
			logf = logger.Info
		} else {
			logf = func(string, ...any) {}
		}
	}
	s := &Server{
		opts:         opts,
		handler:      h,
		logf:         logf,
		fallbackHost: net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
	}
	if opts.RateRPS > 0 {
		s.limiter = newIPLimiter(opts.RateRPS, opts.RateBurst)
	}
	return s
}

// Serve listens on the configured host:port and serves until Close.
func Serve(h Handler, opts Options) error {
	return New(h, opts).ListenAndServe()
}

// ListenAndServe opens the configured listener and runs the accept loop.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.fallbackHost)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve runs the accept loop on ln. It returns nil after Close.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ln.Close()
		return net.ErrClosed
	}
	s.ln = ln
	s.mu.Unlock()

	s.logf("listening", "addr", ln.Addr().String())
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logf("accept_failed", "error", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if s.limiter != nil && !s.limiter.allow(peerIP(conn.RemoteAddr().String())) {
			metrics.RateLimited.Inc()
			_ = conn.Close()
			continue
		}
		go s.handleConn(conn)
	}
}

// Addr returns the bound listener address, nil before Serve.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Close stops the listener. In-flight cycles finish on their own.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}
