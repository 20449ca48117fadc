package client

import (
	"flag"
	"os"
	"time"
)

// Config holds runtime settings for the storectl CLI.
type Config struct {
	ServerAddr  string
	Timeout     time.Duration
	SessionPath string
}

// LoadDefaults populates c with sensible defaults. The session file lives
// under the user's config directory; an empty SessionPath defers resolution
// to the session store.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.Timeout = 10 * time.Second
}

// LoadConfig constructs a Config from defaults, the environment, and
// command-line flags, in that order of precedence.
func LoadConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if addr := os.Getenv("STORECTL_SERVER"); addr != "" {
		cfg.ServerAddr = addr
	}
	if path := os.Getenv("STORECTL_SESSION"); path != "" {
		cfg.SessionPath = path
	}

	fs.StringVar(&cfg.ServerAddr, "server", cfg.ServerAddr, "base URL of the rating service")
	timeoutSec := fs.Int("timeout", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Timeout = time.Duration(*timeoutSec) * time.Second
	return cfg, nil
}
