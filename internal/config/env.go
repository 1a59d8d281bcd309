package config

import (
	"errors"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every environment variable Load reads.
const EnvPrefix = "ASYNCUI_"

// LookupFunc looks up an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

type envSetter func(c *Config, val string) error

// envMapping maps variable names (without prefix) to setters.
var envMapping = map[string]envSetter{
	"LOG_LEVEL":         func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil },
	"LOG_FORMAT":        func(c *Config, v string) error { c.Log.Format = strings.ToLower(v); return nil },
	"LOG_FILE":          func(c *Config, v string) error { c.Log.File = v; return nil },
	"BRIDGE_POLICY":     func(c *Config, v string) error { c.Bridge.Policy = strings.ToLower(v); return nil },
	"BRIDGE_QUEUE_SIZE": intSetter(func(c *Config) *int { return &c.Bridge.QueueSize }),
	"BRIDGE_OVERFLOW":   func(c *Config, v string) error { c.Bridge.Overflow = strings.ToLower(v); return nil },
	"LOOP_QUEUE_SIZE":   intSetter(func(c *Config) *int { return &c.Loop.QueueSize }),
	"TERMINAL_MOUSE":    boolSetter(func(c *Config) *bool { return &c.Terminal.Mouse }),
	"TERMINAL_PASTE":    boolSetter(func(c *Config) *bool { return &c.Terminal.Paste }),
	"TERMINAL_FOCUS":    boolSetter(func(c *Config) *bool { return &c.Terminal.Focus }),
	"METRICS_ENABLED":   boolSetter(func(c *Config) *bool { return &c.Metrics.Enabled }),
	"METRICS_ADDR":      func(c *Config, v string) error { c.Metrics.Addr = v; return nil },
	"WATCH_PATHS":       func(c *Config, v string) error { c.Watch.Paths = splitList(v); return nil },
	"WATCH_RELOAD":      boolSetter(func(c *Config) *bool { return &c.Watch.Reload }),
	"WATCH_DEBOUNCE_MS": intSetter(func(c *Config) *int { return &c.Watch.DebounceMS }),
	"SCRIPT_PATH":       func(c *Config, v string) error { c.Script.Path = v; return nil },
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ApplyEnv overlays ASYNCUI_* variables onto c. Empty values are treated as
// set. Malformed values are reported together.
func ApplyEnv(c *Config, lookup LookupFunc) error {
	var errs []error
	for name, set := range envMapping {
		val, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			errs = append(errs, &ValidationError{
				Path:    EnvPrefix + name,
				Value:   val,
				Message: err.Error(),
			})
		}
	}
	return errors.Join(errs...)
}

// EnvVars returns the names of every variable ApplyEnv reads.
func EnvVars() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, EnvPrefix+name)
	}
	return names
}
