package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dshills/asyncui/internal/bridge"
	"github.com/dshills/asyncui/internal/config"
	"github.com/dshills/asyncui/internal/fswatch"
	"github.com/dshills/asyncui/internal/logging"
)

// startWatcher watches the configured paths, the config file when reload is
// on, and the script file. It does nothing when there is nothing to watch.
func (app *Application) startWatcher(ctx context.Context) error {
	cfg := app.Config()

	var paths []string
	paths = append(paths, cfg.Watch.Paths...)
	if cfg.Watch.Reload && app.opts.ConfigPath != "" {
		paths = append(paths, app.opts.ConfigPath)
	}
	if app.script != nil {
		paths = append(paths, cfg.Script.Path)
	}
	if len(paths) == 0 {
		return nil
	}

	w, err := fswatch.New(
		fswatch.WithLoop(app.loop),
		fswatch.WithDebounce(cfg.Watch.Debounce()),
		fswatch.WithIgnoreHidden(),
		fswatch.WithLogger(logging.Component(app.logger, "watch")),
	)
	if err != nil {
		return err
	}
	app.watcher = w

	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			app.logger.Warn().Err(err).Str("path", p).Msg("cannot watch path")
		}
	}

	changes, err := fswatch.Until[fswatch.Change](w, fswatch.KindChange, bridge.WithQueue(64, bridge.DropOldest))
	if err != nil {
		return err
	}
	failures, err := fswatch.Until[error](w, fswatch.KindError)
	if err != nil {
		changes.Close()
		return err
	}

	go app.watchLoop(ctx, changes)
	go func() {
		defer failures.Close()
		for err := range failures.All(ctx) {
			app.logger.Warn().Err(err).Msg("watch error")
		}
	}()
	return nil
}

// watchLoop reacts to file changes until ctx ends.
func (app *Application) watchLoop(ctx context.Context, changes *bridge.Stream[fswatch.Change]) {
	defer changes.Close()

	for c := range changes.All(ctx) {
		switch {
		case app.opts.ConfigPath != "" && samePath(c.Path, app.opts.ConfigPath):
			app.reloadConfig()
		case app.script != nil && samePath(c.Path, app.Config().Script.Path):
			app.reloadScript(ctx)
		default:
			app.logger.Info().Str("path", c.Path).Stringer("op", c.Op).Msg("file changed")
			app.SetStatus(fmt.Sprintf("%s %s", c.Op, filepath.Base(c.Path)))
		}
	}
}

// reloadConfig re-reads the config file and applies the settings that can
// change at runtime: the log level and stream buffering for new bodies.
func (app *Application) reloadConfig() {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		app.logger.Warn().Err(err).Msg("config reload failed")
		app.SetStatus("config error: " + err.Error())
		return
	}

	app.mu.Lock()
	cfg.Script.Path = app.cfg.Script.Path
	app.cfg = cfg
	app.mu.Unlock()

	zerolog.SetGlobalLevel(cfg.Level())
	app.logger.Info().Str("path", app.opts.ConfigPath).Msg("config reloaded")
	app.SetStatus("config reloaded")
}

// reloadScript reloads the script file and restarts the root component
// with it. A script that fails to compile leaves the running one alone.
func (app *Application) reloadScript(ctx context.Context) {
	s, err := app.loadScript()
	if err != nil {
		app.logger.Warn().Err(err).Msg("script reload failed")
		app.SetStatus("script error: " + err.Error())
		return
	}

	app.mu.Lock()
	app.script = s
	app.mu.Unlock()

	if err := app.remount(ctx); err != nil {
		app.logger.Warn().Err(err).Msg("restarting script")
		return
	}
	app.SetStatus("script reloaded")
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
