package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesSizesAndTimeouts(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 8080
  max_body_size: 2MiB
  max_header_size: 8KiB
  timeouts:
    read: 5s
  rate_limit:
    rps: 20
    burst: 5
logging:
  enabled: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.Host != "0.0.0.0" || opts.Port != 8080 {
		t.Fatalf("addr = %s:%d", opts.Host, opts.Port)
	}
	if opts.MaxBodySize != 2<<20 {
		t.Fatalf("MaxBodySize = %d", opts.MaxBodySize)
	}
	if opts.MaxHeaderSize != 8<<10 {
		t.Fatalf("MaxHeaderSize = %d", opts.MaxHeaderSize)
	}
	if opts.ReadTimeout != 5*time.Second || opts.WriteTimeout != 0 {
		t.Fatalf("timeouts = %v/%v", opts.ReadTimeout, opts.WriteTimeout)
	}
	if opts.RateRPS != 20 || opts.RateBurst != 5 {
		t.Fatalf("rate limit = %v/%d", opts.RateRPS, opts.RateBurst)
	}
	if !opts.EnableLog {
		t.Fatal("logging.enabled lost")
	}
}

func TestOptionsRejectsBadSize(t *testing.T) {
	cfg := &Config{}
	cfg.Server.MaxBodySize = "a lot"
	if _, err := cfg.Options(); err == nil {
		t.Fatal("bad size accepted")
	}
}

func TestLoadEffectivePrecedence(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 10.0.0.1
  port: 8000
`)
	t.Setenv("ONESHOT_PORT", "9000")

	cfg, source, err := LoadEffective(path)
	if err != nil {
		t.Fatalf("LoadEffective failed: %v", err)
	}
	if source != "file+env" {
		t.Fatalf("source = %q", source)
	}
	// env wins over file
	if cfg.Server.Host != "10.0.0.1" || cfg.Server.Port != 9000 {
		t.Fatalf("merged config = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}

	// explicit flags win over both
	ApplyFlags(cfg, Flags{Port: 7000, Set: map[string]bool{"port": true}})
	if cfg.Server.Port != 7000 {
		t.Fatalf("flag override lost, port = %d", cfg.Server.Port)
	}
}

func TestLoadEffectiveMissingFile(t *testing.T) {
	os.Unsetenv("ONESHOT_PORT")
	cfg, source, err := LoadEffective(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if source != "defaults" {
		t.Fatalf("source = %q", source)
	}
	if cfg.Addr() != "127.0.0.1:3000" {
		t.Fatalf("default addr = %q", cfg.Addr())
	}
}
