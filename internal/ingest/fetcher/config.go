package fetcher

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	MinTimeout          = 5 * time.Second
	MaxTimeout          = 10 * time.Second
	DefaultTimeout      = MinTimeout
	DefaultMaxBodyBytes = 5 << 20
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Config struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

func DefaultConfig() Config {
	return Config{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// LoadEnv reads FETCH_TIMEOUT, FETCH_USER_AGENT and FETCH_MAX_BODY_BYTES.
// FETCH_TIMEOUT accepts a Go duration ("7s") or whole seconds ("7").
func LoadEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("FETCH_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("FETCH_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid FETCH_MAX_BODY_BYTES value %q: must be a positive integer", v)
		}
		cfg.MaxBodyBytes = n
	}

	cfg.Timeout = clampTimeout(cfg.Timeout)
	return cfg, nil
}

func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid FETCH_TIMEOUT value %q: %w", v, err)
	}
	return d, nil
}

func clampTimeout(d time.Duration) time.Duration {
	switch {
	case d < MinTimeout:
		slog.Warn("FETCH_TIMEOUT below minimum, clamping", "timeout", d, "min", MinTimeout)
		return MinTimeout
	case d > MaxTimeout:
		slog.Warn("FETCH_TIMEOUT above maximum, clamping", "timeout", d, "max", MaxTimeout)
		return MaxTimeout
	default:
		return d
	}
}
