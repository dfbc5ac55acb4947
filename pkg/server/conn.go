package server

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"oneshot/pkg/logger"
	"oneshot/pkg/metrics"
	"oneshot/pkg/wire"
)

// handleConn owns one connection for exactly one request/response
// cycle. The connection is closed exactly once on every exit path; any
// failure inside the cycle gets a best-effort 500 reply first.
func (s *Server) handleConn(conn net.Conn) {
	metrics.ConnectionsTotal.Inc()
	metrics.InFlight.Inc()
	start := time.Now()

	var once sync.Once
	closeConn := func() { once.Do(func() { _ = conn.Close() }) }
	defer func() {
		closeConn()
		metrics.InFlight.Dec()
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	if err := s.serveCycle(conn); err != nil {
		metrics.CycleErrors.WithLabelValues(errKind(err)).Inc()
		s.logf("cycle_failed", "remote", conn.RemoteAddr().String(), "kind", errKind(err), "error", err)
		s.replyError(conn, err)
	}
}

func (s *Server) serveCycle(conn net.Conn) error {
	if s.opts.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
	}
	if s.opts.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	}

	raw, err := wire.ReadHead(conn, s.opts.MaxHeaderSize)
	if err != nil {
		return err
	}
	head, err := wire.ParseHead(raw)
	if err != nil {
		return err
	}
	body, err := wire.ResolveBody(conn, head, s.opts.MaxBodySize)
	if err != nil {
		return err
	}
	req, err := buildRequest(head, body, conn.RemoteAddr().String(), s.fallbackHost)
	if err != nil {
		return err
	}

	if s.opts.EnableLog {
		logger.LogRequest(req.Method, req.URL.Path, req.RemoteIP, req.Header.Map())
	}

	resp, err := s.callHandler(req)
	if err != nil {
		return err
	}
	if resp == nil {
		resp = NewResponse(http.StatusOK)
	}
	n, err := writeResponse(conn, resp)
	metrics.ResponseBytes.Add(float64(n))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

// callHandler invokes the application handler, converting panics and
// returned errors into ErrHandlerFailure.
func (s *Server) callHandler(req *Request) (resp *Response, err error) {
	defer func() {
		if v := recover(); v != nil {
			resp = nil
			err = fmt.Errorf("%w: panic: %v", ErrHandlerFailure, v)
		}
	}()
	r, herr := s.handler.Handle(req)
	if herr != nil {
		return nil, fmt.Errorf("%w: %v", ErrHandlerFailure, herr)
	}
	return r, nil
}

// replyError attempts exactly one minimal 500 reply carrying the error
// text. A secondary failure is logged and discarded, never retried.
func (s *Server) replyError(conn net.Conn, cause error) {
	resp := Text(http.StatusInternalServerError, cause.Error())
	if _, err := writeResponse(conn, resp); err != nil {
		s.logf("error_reply_failed", "remote", conn.RemoteAddr().String(), "error", err)
	}
}
