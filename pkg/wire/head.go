package wire

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const headTerminator = "\r\n\r\n"

// methodPrefixes are the accepted start-line prefixes, method plus the
// following space. The check runs once, as soon as 8 bytes have arrived,
// which is enough to cover the longest method (CONNECT).
var methodPrefixes = []string{
	"CONNECT ", "DELETE ", "GET ", "HEAD ", "OPTIONS ",
	"PATCH ", "POST ", "PUT ", "TRACE ",
}

// ReadHead accumulates bytes from r one at a time until the CRLFCRLF
// terminator, returning the raw head including the terminator. The
// buffer never grows past maxHeaderSize; hitting the cap without a
// terminator is ErrHeaderTooLarge. Reading byte-at-a-time is slow but
// bounds worst-case memory exactly and keeps body bytes untouched on
// the connection.
func ReadHead(r io.Reader, maxHeaderSize int) ([]byte, error) {
	buf := make([]byte, maxHeaderSize)
	size := 0
	for {
		if size == maxHeaderSize {
			return nil, ErrHeaderTooLarge
		}
		n, err := r.Read(buf[size : size+1])
		if n == 0 {
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("%w: %v", ErrConnClosed, err)
			}
			return nil, ErrConnClosed
		}
		size++
		if size == 8 && !validMethodPrefix(string(buf[:8])) {
			return nil, ErrInvalidMethod
		}
		if buf[size-1] == '\n' && size >= 4 && string(buf[size-4:size]) == headTerminator {
			return buf[:size], nil
		}
	}
}

func validMethodPrefix(head8 string) bool {
	for _, p := range methodPrefixes {
		if strings.HasPrefix(head8, p) {
			return true
		}
	}
	return false
}

// Head is a parsed request head.
type Head struct {
	Method  string
	Target  string
	Proto   string
	Headers *Header
}

// ParseHead parses a raw head produced by ReadHead into its start line
// and header fields. Start-line grammar is METHOD SP TARGET SP VERSION;
// header lines are Name: Value. Anything else is ErrInvalidHead.
func ParseHead(raw []byte) (*Head, error) {
	text := strings.TrimSuffix(string(raw), headTerminator)
	lines := strings.Split(text, "\r\n")
	parts := strings.Split(lines[0], " ")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || !strings.HasPrefix(parts[2], "HTTP/") {
		return nil, fmt.Errorf("%w: bad start line %q", ErrInvalidHead, lines[0])
	}
	head := &Head{
		Method:  parts[0],
		Target:  parts[1],
		Proto:   parts[2],
		Headers: NewHeader(),
	}
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		colon := strings.Index(line, ":")
		if colon <= 0 {
			return nil, fmt.Errorf("%w: bad header line %q", ErrInvalidHead, line)
		}
		name := strings.TrimSpace(line[:colon])
		if name == "" {
			return nil, fmt.Errorf("%w: empty header name", ErrInvalidHead)
		}
		head.Headers.Set(name, strings.TrimSpace(line[colon+1:]))
	}
	return head, nil
}

// ContentLength returns the declared Content-Length and whether one was
// declared and syntactically valid: non-negative base-10 digits only.
func (h *Head) ContentLength() (int64, bool) {
	v := h.Headers.Get("Content-Length")
	if v == "" {
		return 0, false
	}
	// ParseUint rejects signs, spaces and any stray characters.
	n, err := strconv.ParseUint(v, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(n), true
}
