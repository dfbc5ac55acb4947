// oneshot-health probes a running oneshotd instance and exits 0 when
// the health endpoint answers 200 within the timeout. Suitable as a
// container health check.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fasthttp"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:3000", "server address to probe")
	path := flag.String("path", "/healthz", "health endpoint path")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	flag.Parse()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://" + *addr + *path)
	req.Header.SetMethod(fasthttp.MethodGet)

	// The server closes after every response, so disable keep-alive on
	// our side too.
	client := &fasthttp.Client{MaxIdleConnDuration: time.Millisecond}
	if err := client.DoTimeout(req, resp, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "probe failed: %v\n", err)
		os.Exit(1)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		fmt.Fprintf(os.Stderr, "unhealthy: status %d\n", resp.StatusCode())
		os.Exit(1)
	}
	fmt.Printf("ok: %s\n", resp.Body())
}
