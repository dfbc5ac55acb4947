package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Access is the request-summary logger. It stays a no-op until
// EnableAccess is called, so disabled logging costs nothing on the
// connection path.
var Access = zap.NewNop()

// EnableAccess switches the access logger to a real production logger.
func EnableAccess() {
	l, err := zap.NewProduction()
	if err != nil {
		return
	}
	Access = l
}

// Sync flushes any buffered access log entries.
func Sync() {
	_ = Access.Sync()
}

var sensitive = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"x-api-key":     {},
}

func redactHeaderValue(k, v string) string {
	if v == "" {
		return ""
	}
	if _, ok := sensitive[strings.ToLower(k)]; ok {
		return "<redacted>"
	}
	return v
}

// SafeHeaders returns a compact string representation of headers suitable
// for logging with sensitive values redacted.
func SafeHeaders(headers map[string]string) string {
	parts := make([]string, 0, len(headers))
	for k, v := range headers {
		parts = append(parts, k+"="+redactHeaderValue(k, v))
	}
	return strings.Join(parts, "; ")
}

// LogRequest logs a concise, safe summary of an incoming request.
func LogRequest(method, path, remote string, headers map[string]string) {
	Access.Info("incoming_request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("remote", remote),
		zap.String("headers", SafeHeaders(headers)),
	)
}
