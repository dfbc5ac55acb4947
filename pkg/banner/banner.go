package banner

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"oneshot/pkg/server"
)

const banner = `
 ██████╗ ███╗   ██╗███████╗███████╗██╗  ██╗ ██████╗ ████████╗
██╔═══██╗████╗  ██║██╔════╝██╔════╝██║  ██║██╔═══██╗╚══██╔══╝
██║   ██║██╔██╗ ██║█████╗  ███████╗███████║██║   ██║   ██║
██║   ██║██║╚██╗██║██╔══╝  ╚════██║██╔══██║██║   ██║   ██║
╚██████╔╝██║ ╚████║███████╗███████║██║  ██║╚██████╔╝   ██║
 ╚═════╝ ╚═╝  ╚═══╝╚══════╝╚══════╝╚═╝  ╚═╝ ╚═════╝    ╚═╝
`

// Print writes the startup banner with the effective runtime settings.
func Print(addr, dbPath, sources, version string, opts server.Options) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:      %s\n", addr)
	fmt.Printf("DB Path:     %s\n", dbPath)
	fmt.Printf("Max head:    %s\n", humanize.IBytes(uint64(opts.MaxHeaderSize)))
	fmt.Printf("Max body:    %s\n", humanize.IBytes(uint64(opts.MaxBodySize)))
	if version != "" {
		fmt.Printf("Version:     %s\n", version)
	}
	if sources != "" {
		fmt.Printf("Config from: %s\n", sources)
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET    /healthz        - liveness probe")
	fmt.Println("GET    /metrics        - Prometheus metrics")
	fmt.Println("GET    /kv/{key}       - read a value")
	fmt.Println("PUT    /kv/{key}       - write a value (JSON or text body)")
	fmt.Println("DELETE /kv/{key}       - delete a value")
	fmt.Println("POST   /echo           - echo the request body back")
	fmt.Println("\n== Examples ===================================================")
	fmt.Printf("curl -X PUT 'http://%s/kv/greeting' -H 'Content-Type: text/plain' -d 'hello'\n", addr)
	fmt.Printf("curl 'http://%s/kv/greeting'\n", addr)
	fmt.Println("\nEvery connection serves one request and is closed (no keep-alive).")
}
