package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// Flags holds parsed command-line flag values and which were set.
type Flags struct {
	Host   string
	Port   int
	DB     string
	Config string
	Log    bool
	Set    map[string]bool
}

// ParseCommandFlags parses command-line flags. Flags explicitly set on
// the command line win over env and file values.
func ParseCommandFlags() Flags {
	hostPtr := flag.String("host", "127.0.0.1", "listen host")
	portPtr := flag.Int("port", 3000, "listen port")
	dbPtr := flag.String("db", "./.database", "pebble DB path for the demo app")
	cfgPtr := flag.String("config", "./config.yaml", "path to config file")
	logPtr := flag.Bool("log", false, "enable request logging")
	flag.Parse()
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return Flags{Host: *hostPtr, Port: *portPtr, DB: *dbPtr, Config: *cfgPtr, Log: *logPtr, Set: set}
}

// ResolveConfigPath picks the config file path: an explicit flag wins,
// then ONESHOT_CONFIG, then the flag default.
func ResolveConfigPath(flagVal string, flagSet bool) string {
	if flagSet {
		return flagVal
	}
	if v := strings.TrimSpace(os.Getenv("ONESHOT_CONFIG")); v != "" {
		return v
	}
	return flagVal
}

// applyEnv overlays ONESHOT_* environment variables onto cfg and
// reports whether any were present.
func applyEnv(cfg *Config) bool {
	used := false
	if v := os.Getenv("ONESHOT_HOST"); v != "" {
		cfg.Server.Host = v
		used = true
	}
	if v := os.Getenv("ONESHOT_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
			used = true
		}
	}
	if v := os.Getenv("ONESHOT_MAX_BODY_SIZE"); v != "" {
		cfg.Server.MaxBodySize = v
		used = true
	}
	if v := os.Getenv("ONESHOT_MAX_HEADER_SIZE"); v != "" {
		cfg.Server.MaxHeaderSize = v
		used = true
	}
	if v := os.Getenv("ONESHOT_READ_TIMEOUT"); v != "" {
		cfg.Server.Timeouts.Read = v
		used = true
	}
	if v := os.Getenv("ONESHOT_WRITE_TIMEOUT"); v != "" {
		cfg.Server.Timeouts.Write = v
		used = true
	}
	if v := os.Getenv("ONESHOT_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
		used = true
	}
	if v := os.Getenv("ONESHOT_LOG"); v != "" {
		cfg.Logging.Enabled = v == "1" || strings.EqualFold(v, "true")
		used = true
	}
	return used
}

// ApplyFlags overlays explicitly-set command-line flags onto cfg.
func ApplyFlags(cfg *Config, f Flags) {
	if f.Set["host"] {
		cfg.Server.Host = f.Host
	}
	if f.Set["port"] {
		cfg.Server.Port = f.Port
	}
	if f.Set["db"] {
		cfg.Storage.DBPath = f.DB
	}
	if f.Set["log"] {
		cfg.Logging.Enabled = f.Log
	}
}
