package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"oneshot/pkg/server"
)

// Config is the YAML-backed server configuration. Size fields accept
// human-readable values ("1MiB", "16KiB") or plain byte counts;
// timeout fields accept Go duration strings ("5s").
type Config struct {
	Server struct {
		Host          string `yaml:"host"`
		Port          int    `yaml:"port"`
		MaxBodySize   string `yaml:"max_body_size"`
		MaxHeaderSize string `yaml:"max_header_size"`
		Timeouts      struct {
			Read  string `yaml:"read"`
			Write string `yaml:"write"`
		} `yaml:"timeouts"`
		RateLimit struct {
			RPS   float64 `yaml:"rps"`
			Burst int     `yaml:"burst"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Storage struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"storage"`
	Logging struct {
		Enabled bool   `yaml:"enabled"`
		Level   string `yaml:"level"`
	} `yaml:"logging"`
}

// Load reads and parses the YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadEffective loads the config file (missing file is not an error)
// and applies environment overrides on top. The returned source string
// names what contributed: "defaults", "file", "env" or "file+env".
func LoadEffective(path string) (*Config, string, error) {
	cfg := &Config{}
	source := "defaults"
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, "", err
			}
		} else {
			cfg = loaded
			source = "file"
		}
	}
	if applyEnv(cfg) {
		if source == "file" {
			source = "file+env"
		} else {
			source = "env"
		}
	}
	return cfg, source, nil
}

// Addr returns the effective listen address host:port.
func (c *Config) Addr() string {
	host := c.Server.Host
	if host == "" {
		host = server.DefaultHost
	}
	port := c.Server.Port
	if port == 0 {
		port = server.DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Options converts the config into server.Options, leaving zero values
// for server.New to fill with defaults.
func (c *Config) Options() (server.Options, error) {
	opts := server.Options{
		Host:      c.Server.Host,
		Port:      c.Server.Port,
		EnableLog: c.Logging.Enabled,
		RateRPS:   c.Server.RateLimit.RPS,
		RateBurst: c.Server.RateLimit.Burst,
	}
	if v := c.Server.MaxBodySize; v != "" {
		n, err := humanize.ParseBytes(v)
		if err != nil {
			return opts, fmt.Errorf("max_body_size %q: %w", v, err)
		}
		opts.MaxBodySize = int64(n)
	}
	if v := c.Server.MaxHeaderSize; v != "" {
		n, err := humanize.ParseBytes(v)
		if err != nil {
			return opts, fmt.Errorf("max_header_size %q: %w", v, err)
		}
		opts.MaxHeaderSize = int(n)
	}
	if v := c.Server.Timeouts.Read; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return opts, fmt.Errorf("timeouts.read %q: %w", v, err)
		}
		opts.ReadTimeout = d
	}
	if v := c.Server.Timeouts.Write; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return opts, fmt.Errorf("timeouts.write %q: %w", v, err)
		}
		opts.WriteTimeout = d
	}
	return opts, nil
}
