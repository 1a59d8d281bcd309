package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/bridge"
)

// Config holds every asyncui setting.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Bridge   BridgeConfig   `toml:"bridge"`
	Loop     LoopConfig     `toml:"loop"`
	Terminal TerminalConfig `toml:"terminal"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Watch    WatchConfig    `toml:"watch"`
	Script   ScriptConfig   `toml:"script"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format"`
	// File is where logs go. Empty means stderr, except under the
	// terminal host where it means no logging.
	File string `toml:"file"`
}

// BridgeConfig sets the default buffering of event streams.
type BridgeConfig struct {
	// Policy is "latest" or "queue".
	Policy string `toml:"policy"`
	// QueueSize is the capacity under the queue policy.
	QueueSize int `toml:"queue_size"`
	// Overflow is "drop-oldest" or "drop-newest".
	Overflow string `toml:"overflow"`
}

// LoopConfig configures the host loop.
type LoopConfig struct {
	QueueSize int `toml:"queue_size"`
}

// TerminalConfig configures the terminal host.
type TerminalConfig struct {
	Mouse bool `toml:"mouse"`
	Paste bool `toml:"paste"`
	Focus bool `toml:"focus"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// WatchConfig configures file watching.
type WatchConfig struct {
	// Paths are watched and their changes surfaced as events.
	Paths []string `toml:"paths"`
	// Reload re-reads the config file when it changes.
	Reload bool `toml:"reload"`
	// DebounceMS coalesces bursts of changes to one file.
	DebounceMS int `toml:"debounce_ms"`
}

// Debounce returns DebounceMS as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// ScriptConfig configures the Lua component body.
type ScriptConfig struct {
	// Path is a Lua file run as the body of the root component.
	Path string `toml:"path"`
}

// Policy names.
const (
	PolicyLatest = "latest"
	PolicyQueue  = "queue"

	OverflowDropOldest = "drop-oldest"
	OverflowDropNewest = "drop-newest"
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Bridge: BridgeConfig{
			Policy:    PolicyLatest,
			QueueSize: bridge.DefaultQueueSize,
			Overflow:  OverflowDropOldest,
		},
		Loop: LoopConfig{
			QueueSize: 1024,
		},
		Terminal: TerminalConfig{
			Mouse: true,
			Paste: true,
			Focus: true,
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
		Watch: WatchConfig{
			DebounceMS: 50,
		},
	}
}

// Load resolves settings from defaults, the TOML file at path and the
// environment. A missing file is not an error; an empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decode(path, bytes.NewReader(data), &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadReader decodes TOML from r on top of the defaults. The environment is
// not consulted.
func LoadReader(r io.Reader) (Config, error) {
	cfg := Default()
	if err := decode("<reader>", r, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(source string, r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			pe.Message = sme.String()
		}
		return pe
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil || c.Log.Level == "" {
		errs = append(errs, &ValidationError{Path: "log.level", Value: c.Log.Level, Message: "unknown level"})
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, &ValidationError{Path: "log.format", Value: c.Log.Format, Message: `must be "console" or "json"`})
	}
	if c.Bridge.Policy != PolicyLatest && c.Bridge.Policy != PolicyQueue {
		errs = append(errs, &ValidationError{Path: "bridge.policy", Value: c.Bridge.Policy, Message: `must be "latest" or "queue"`})
	}
	if c.Bridge.QueueSize < 1 {
		errs = append(errs, &ValidationError{Path: "bridge.queue_size", Value: c.Bridge.QueueSize, Message: "must be at least 1"})
	}
	if c.Bridge.Overflow != OverflowDropOldest && c.Bridge.Overflow != OverflowDropNewest {
		errs = append(errs, &ValidationError{Path: "bridge.overflow", Value: c.Bridge.Overflow, Message: `must be "drop-oldest" or "drop-newest"`})
	}
	if c.Loop.QueueSize < 1 {
		errs = append(errs, &ValidationError{Path: "loop.queue_size", Value: c.Loop.QueueSize, Message: "must be at least 1"})
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		errs = append(errs, &ValidationError{Path: "metrics.addr", Value: c.Metrics.Addr, Message: "required when metrics are enabled"})
	}
	if c.Watch.DebounceMS < 0 {
		errs = append(errs, &ValidationError{Path: "watch.debounce_ms", Value: c.Watch.DebounceMS, Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

// BridgeOptions converts the bridge settings to stream options.
func (c Config) BridgeOptions() []bridge.Option {
	if c.Bridge.Policy != PolicyQueue {
		return []bridge.Option{bridge.WithLatestWins()}
	}
	overflow := bridge.DropOldest
	if c.Bridge.Overflow == OverflowDropNewest {
		overflow = bridge.DropNewest
	}
	return []bridge.Option{bridge.WithQueue(c.Bridge.QueueSize, overflow)}
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
