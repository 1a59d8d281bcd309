package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/dom"
)

func envFrom(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Bridge.Policy != PolicyLatest {
		t.Errorf("expected latest policy by default, got %q", cfg.Bridge.Policy)
	}
}

func TestLoadReader(t *testing.T) {
	src := `
[log]
level = "debug"
format = "json"

[bridge]
policy = "queue"
queue_size = 4
overflow = "drop-newest"

[terminal]
mouse = false

[watch]
paths = ["a", "b"]
debounce_ms = 10
`
	cfg, err := LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Bridge.Policy != PolicyQueue || cfg.Bridge.QueueSize != 4 || cfg.Bridge.Overflow != OverflowDropNewest {
		t.Errorf("unexpected bridge config %+v", cfg.Bridge)
	}
	if cfg.Terminal.Mouse {
		t.Error("expected mouse disabled")
	}
	if !cfg.Terminal.Paste {
		t.Error("unset keys should keep their defaults")
	}
	if !slices.Equal(cfg.Watch.Paths, []string{"a", "b"}) || cfg.Watch.Debounce().Milliseconds() != 10 {
		t.Errorf("unexpected watch config %+v", cfg.Watch)
	}
}

func TestLoadReader_ParseError(t *testing.T) {
	_, err := LoadReader(strings.NewReader("[log\nlevel = 1"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Path != "<reader>" {
		t.Errorf("unexpected path %q", pe.Path)
	}
}

func TestLoadReader_UnknownKey(t *testing.T) {
	_, err := LoadReader(strings.NewReader("[bridge]\nflavour = \"mint\"\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError for unknown key, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"empty level", func(c *Config) { c.Log.Level = "" }, "log.level"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"policy", func(c *Config) { c.Bridge.Policy = "fifo" }, "bridge.policy"},
		{"queue size", func(c *Config) { c.Bridge.QueueSize = 0 }, "bridge.queue_size"},
		{"overflow", func(c *Config) { c.Bridge.Overflow = "block" }, "bridge.overflow"},
		{"loop queue", func(c *Config) { c.Loop.QueueSize = -1 }, "loop.queue_size"},
		{"metrics addr", func(c *Config) { c.Metrics.Enabled = true; c.Metrics.Addr = "" }, "metrics.addr"},
		{"debounce", func(c *Config) { c.Watch.DebounceMS = -5 }, "watch.debounce_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("expected error on %s, got %v", tt.path, err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, envFrom(map[string]string{
		"ASYNCUI_LOG_LEVEL":         "WARN",
		"ASYNCUI_BRIDGE_POLICY":     "queue",
		"ASYNCUI_BRIDGE_QUEUE_SIZE": "8",
		"ASYNCUI_TERMINAL_MOUSE":    "false",
		"ASYNCUI_WATCH_PATHS":       "x, ,y",
		"ASYNCUI_SCRIPT_PATH":       "body.lua",
		"UNRELATED":                 "1",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected warn, got %q", cfg.Log.Level)
	}
	if cfg.Bridge.Policy != PolicyQueue || cfg.Bridge.QueueSize != 8 {
		t.Errorf("unexpected bridge config %+v", cfg.Bridge)
	}
	if cfg.Terminal.Mouse {
		t.Error("expected mouse disabled")
	}
	if !slices.Equal(cfg.Watch.Paths, []string{"x", "y"}) {
		t.Errorf("unexpected paths %v", cfg.Watch.Paths)
	}
	if cfg.Script.Path != "body.lua" {
		t.Errorf("unexpected script path %q", cfg.Script.Path)
	}
}

func TestApplyEnv_Malformed(t *testing.T) {
	cfg := Default()
	err := ApplyEnv(&cfg, envFrom(map[string]string{
		"ASYNCUI_BRIDGE_QUEUE_SIZE": "lots",
		"ASYNCUI_METRICS_ENABLED":   "maybe",
	}))
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "ASYNCUI_BRIDGE_QUEUE_SIZE") || !strings.Contains(err.Error(), "ASYNCUI_METRICS_ENABLED") {
		t.Errorf("expected both variables reported, got %v", err)
	}
	if cfg.Bridge.QueueSize != bridge.DefaultQueueSize {
		t.Errorf("malformed value should leave the setting alone, got %d", cfg.Bridge.QueueSize)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asyncui.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n[bridge]\npolicy = \"queue\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("ASYNCUI_LOG_LEVEL", "error")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("environment should override the file, got %q", cfg.Log.Level)
	}
	if cfg.Bridge.Policy != PolicyQueue {
		t.Errorf("file should override defaults, got %q", cfg.Bridge.Policy)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Log.Level == "" {
		t.Error("expected defaults")
	}
}

func TestBridgeOptions(t *testing.T) {
	d := dom.NewDocument()
	el := d.CreateElement("button")

	cfg := Default()
	s, err := bridge.New[int](el, "click", cfg.BridgeOptions()...)
	if err != nil {
		t.Fatalf("bridge.New failed: %v", err)
	}
	if s.Policy() != bridge.LatestWins {
		t.Errorf("expected latest-wins, got %s", s.Policy())
	}
	s.Close()

	cfg.Bridge.Policy = PolicyQueue
	cfg.Bridge.QueueSize = 2
	cfg.Bridge.Overflow = OverflowDropNewest
	q, err := bridge.New[int](el, "click", cfg.BridgeOptions()...)
	if err != nil {
		t.Fatalf("bridge.New failed: %v", err)
	}
	defer q.Close()
	if q.Policy() != bridge.Queue {
		t.Errorf("expected queue, got %s", q.Policy())
	}

	for i := range 3 {
		d.Dispatch(el, "click", i, false)
	}
	if q.Pending() != 2 {
		t.Errorf("expected capacity 2, got %d pending", q.Pending())
	}
	if v, _ := q.TryNext(); v != 0 {
		t.Errorf("drop-newest should keep the first payload, got %d", v)
	}
}

func TestLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	if cfg.Level().String() != "debug" {
		t.Errorf("expected debug, got %s", cfg.Level())
	}
	cfg.Log.Level = "nonsense"
	if cfg.Level().String() != "info" {
		t.Errorf("expected info fallback, got %s", cfg.Level())
	}
}

func TestEnvVars(t *testing.T) {
	vars := EnvVars()
	if !slices.Contains(vars, "ASYNCUI_LOG_LEVEL") {
		t.Errorf("expected ASYNCUI_LOG_LEVEL in %v", vars)
	}
	for _, v := range vars {
		if !strings.HasPrefix(v, EnvPrefix) {
			t.Errorf("variable %s lacks prefix", v)
		}
	}
}
