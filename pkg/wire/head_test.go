package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReadHeadSimple(t *testing.T) {
	in := "GET /x HTTP/1.1\r\nHost: a:1\r\n\r\n"
	raw, err := ReadHead(strings.NewReader(in), 16*1024)
	if err != nil {
		t.Fatalf("ReadHead failed: %v", err)
	}
	if string(raw) != in {
		t.Fatalf("head = %q, want %q", raw, in)
	}
}

func TestReadHeadStopsAtTerminator(t *testing.T) {
	in := "POST /x HTTP/1.1\r\n\r\nBODYBYTES"
	r := strings.NewReader(in)
	raw, err := ReadHead(r, 16*1024)
	if err != nil {
		t.Fatalf("ReadHead failed: %v", err)
	}
	if string(raw) != "POST /x HTTP/1.1\r\n\r\n" {
		t.Fatalf("head = %q", raw)
	}
	rest, _ := io.ReadAll(r)
	if string(rest) != "BODYBYTES" {
		t.Fatalf("body bytes consumed by head reader, remaining %q", rest)
	}
}

func TestReadHeadInvalidMethod(t *testing.T) {
	cases := []string{
		"NONSENSE STREAM OF BYTES\r\n\r\n",
		"get /x HTTP/1.1\r\n\r\n",
		"PUTTING / HTTP/1.1\r\n\r\n",
		"\x00\x01\x02\x03\x04\x05\x06\x07",
	}
	for _, in := range cases {
		r := strings.NewReader(in)
		if _, err := ReadHead(r, 16*1024); !errors.Is(err, ErrInvalidMethod) {
			t.Fatalf("input %q: err = %v, want ErrInvalidMethod", in, err)
		}
		// The check fires at the 8-byte mark, before the rest is consumed.
		if r.Len() != len(in)-8 {
			t.Fatalf("input %q: consumed %d bytes, want 8", in, len(in)-r.Len())
		}
	}
}

func TestReadHeadAllowsEveryMethod(t *testing.T) {
	for _, m := range []string{"CONNECT", "DELETE", "GET", "HEAD", "OPTIONS", "PATCH", "POST", "PUT", "TRACE"} {
		in := m + " /p HTTP/1.1\r\n\r\n"
		if _, err := ReadHead(strings.NewReader(in), 1024); err != nil {
			t.Fatalf("method %s rejected: %v", m, err)
		}
	}
}

func TestReadHeadTooLarge(t *testing.T) {
	in := "GET /" + strings.Repeat("a", 4096) + " HTTP/1.1\r\n\r\n"
	_, err := ReadHead(strings.NewReader(in), 64)
	if !errors.Is(err, ErrHeaderTooLarge) {
		t.Fatalf("err = %v, want ErrHeaderTooLarge", err)
	}
}

func TestReadHeadExactCapacity(t *testing.T) {
	// A head ending exactly at the cap is still accepted.
	in := "GET /x HTTP/1.1\r\n\r\n"
	raw, err := ReadHead(strings.NewReader(in), len(in))
	if err != nil {
		t.Fatalf("ReadHead failed: %v", err)
	}
	if len(raw) != len(in) {
		t.Fatalf("head length = %d, want %d", len(raw), len(in))
	}
}

func TestReadHeadPrematureClose(t *testing.T) {
	_, err := ReadHead(strings.NewReader("GET /x HTTP/1.1\r\nHost:"), 16*1024)
	if !errors.Is(err, ErrConnClosed) {
		t.Fatalf("err = %v, want ErrConnClosed", err)
	}
}

func TestParseHead(t *testing.T) {
	raw := []byte("POST /items?q=1 HTTP/1.1\r\nHost: a:1\r\nContent-Type: application/json\r\nContent-Length: 13\r\n\r\n")
	head, err := ParseHead(raw)
	if err != nil {
		t.Fatalf("ParseHead failed: %v", err)
	}
	if head.Method != "POST" || head.Target != "/items?q=1" || head.Proto != "HTTP/1.1" {
		t.Fatalf("start line parsed as %q %q %q", head.Method, head.Target, head.Proto)
	}
	if got := head.Headers.Get("host"); got != "a:1" {
		t.Fatalf("case-insensitive Host lookup = %q", got)
	}
	n, ok := head.ContentLength()
	if !ok || n != 13 {
		t.Fatalf("ContentLength = %d, %v", n, ok)
	}
}

func TestParseHeadMalformed(t *testing.T) {
	cases := [][]byte{
		[]byte("GARBAGE\r\n\r\n"),
		[]byte("GET /x\r\n\r\n"),
		[]byte("GET /x NOTHTTP/1.1\r\n\r\n"),
		[]byte("GET /x HTTP/1.1\r\nno-colon-line\r\n\r\n"),
		[]byte("GET /x HTTP/1.1\r\n: empty-name\r\n\r\n"),
	}
	for _, raw := range cases {
		if _, err := ParseHead(raw); !errors.Is(err, ErrInvalidHead) {
			t.Fatalf("input %q: err = %v, want ErrInvalidHead", raw, err)
		}
	}
}

func TestContentLengthStrict(t *testing.T) {
	cases := map[string]bool{
		"13":  true,
		"0":   true,
		"+13": false,
		"-1":  false,
		" 13": false,
		"13x": false,
		"1e3": false,
	}
	for v, want := range cases {
		head := &Head{Headers: NewHeader()}
		head.Headers.Set("Content-Length", v)
		if _, ok := head.ContentLength(); ok != want {
			t.Fatalf("Content-Length %q: valid = %v, want %v", v, ok, want)
		}
	}
}

func TestReadHeadNeverOverruns(t *testing.T) {
	// Endless non-terminated stream must stop exactly at the cap.
	src := io.LimitReader(endlessReader{}, 1<<20)
	_, err := ReadHead(src, 512)
	if !errors.Is(err, ErrHeaderTooLarge) {
		t.Fatalf("err = %v, want ErrHeaderTooLarge", err)
	}
}

type endlessReader struct{}

func (endlessReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 'G'
	}
	return len(p), nil
}

func TestReadHeadLFInsideHead(t *testing.T) {
	// A lone CRLF must not terminate the head.
	in := "GET /x HTTP/1.1\r\nA: 1\r\nB: 2\r\n\r\n"
	raw, err := ReadHead(bytes.NewReader([]byte(in)), 1024)
	if err != nil {
		t.Fatalf("ReadHead failed: %v", err)
	}
	if string(raw) != in {
		t.Fatalf("head = %q, want %q", raw, in)
	}
}
