package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores web front end settings.
type Config struct {
	// Port is the HTTP listen port.
	Port int
	// APIBaseURL is the base URL of the remote delivery API.
	APIBaseURL string
	// APITimeout bounds every outbound API call.
	APITimeout time.Duration
	// CookieSecure marks session cookies as HTTPS-only.
	CookieSecure bool
	// Pprof holds the optional pprof sidecar settings.
	Pprof Pprof
}

// Pprof stores pprof sidecar settings. An empty Addr disables it.
type Pprof struct {
	Addr string
	User string
	Pass string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:       defaultPort,
		APIBaseURL: defaultAPIBaseURL,
		APITimeout: defaultAPITimeout,
	}

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.APITimeout = d
		}
	}
	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		cfg.CookieSecure = v == "1" || strings.EqualFold(v, "true")
	}
	cfg.Pprof = Pprof{
		Addr: os.Getenv("PPROF_ADDR"),
		User: os.Getenv("PPROF_USER"),
		Pass: os.Getenv("PPROF_PASS"),
	}

	fs := pflag.NewFlagSet("sycelim-web", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "delivery API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "outbound API request timeout")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("invalid api base url: %q", c.APIBaseURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("invalid api timeout: %v", c.APITimeout)
	}
	return nil
}
