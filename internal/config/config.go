// Package config holds the runtime settings for page synchronization.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultEnvPrefix is the environment variable prefix for overrides.
const DefaultEnvPrefix = "PAGESYNC_"

// Config is the full set of tunables. Zero value is not usable; start from
// Default.
type Config struct {
	// RedisplayDelay is how long the scheduler waits after a page change
	// before forcing a redraw.
	RedisplayDelay time.Duration

	// PageStep is the page offset between adjacent windows.
	PageStep int

	// EnabledModes lists document modes to enable at startup. Modes without
	// a registered viewer are ignored.
	EnabledModes []string

	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		RedisplayDelay: time.Millisecond,
		PageStep:       1,
		LogLevel:       "info",
	}
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	if c.RedisplayDelay < 0 {
		return fmt.Errorf("redisplay delay must not be negative, got %v", c.RedisplayDelay)
	}
	if c.PageStep < 1 {
		return fmt.Errorf("page step must be at least 1, got %d", c.PageStep)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Environment variable names, without prefix.
const (
	envRedisplayDelay = "REDISPLAY_DELAY"
	envPageStep       = "PAGE_STEP"
	envModes          = "MODES"
	envLogLevel       = "LOG_LEVEL"
)

// FromEnv returns c with prefixed environment overrides applied. The prefix
// should include the trailing underscore (e.g. "PAGESYNC_"). Unset variables
// leave the corresponding field untouched.
//
//	PAGESYNC_REDISPLAY_DELAY  duration ("5ms") or integer milliseconds
//	PAGESYNC_PAGE_STEP        integer >= 1
//	PAGESYNC_MODES            comma-separated mode identifiers
//	PAGESYNC_LOG_LEVEL        debug|info|warn|error
func (c Config) FromEnv(prefix string) (Config, error) {
	if val, ok := os.LookupEnv(prefix + envRedisplayDelay); ok {
		d, err := parseDelay(val)
		if err != nil {
			return c, fmt.Errorf("%s%s: %w", prefix, envRedisplayDelay, err)
		}
		c.RedisplayDelay = d
	}

	if val, ok := os.LookupEnv(prefix + envPageStep); ok {
		n, err := strconv.Atoi(val)
		if err != nil {
			return c, fmt.Errorf("%s%s: %w", prefix, envPageStep, err)
		}
		c.PageStep = n
	}

	if val, ok := os.LookupEnv(prefix + envModes); ok {
		c.EnabledModes = splitModes(val)
	}

	if val, ok := os.LookupEnv(prefix + envLogLevel); ok {
		c.LogLevel = strings.ToLower(strings.TrimSpace(val))
	}

	return c, nil
}

// parseDelay accepts a Go duration string or a bare integer of milliseconds.
func parseDelay(val string) (time.Duration, error) {
	if n, err := strconv.Atoi(val); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	return time.ParseDuration(val)
}

func splitModes(val string) []string {
	var modes []string
	for _, part := range strings.Split(val, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			modes = append(modes, part)
		}
	}
	return modes
}
