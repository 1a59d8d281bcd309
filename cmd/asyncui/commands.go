package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/asyncui/internal/app"
	"github.com/dshills/asyncui/internal/config"
	"github.com/dshills/asyncui/internal/events"
)

// loadConfig resolves the configuration and applies the root flags.
func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		scriptPath  string
		watch       []string
		metrics     bool
		metricsAddr string
		logFile     string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo or a Lua script in the terminal",
		Example: "  asyncui run\n" +
			"  asyncui run --script counter.lua --watch ./notes\n" +
			"  asyncui run --metrics --metrics-addr 127.0.0.1:9464",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			if fs.Changed("script") {
				cfg.Script.Path = scriptPath
			}
			if fs.Changed("watch") {
				cfg.Watch.Paths = append(cfg.Watch.Paths, watch...)
			}
			if fs.Changed("metrics") {
				cfg.Metrics.Enabled = metrics
			}
			if fs.Changed("metrics-addr") {
				cfg.Metrics.Addr = metricsAddr
			}
			if fs.Changed("log-file") {
				cfg.Log.File = logFile
			}

			application, err := app.New(app.Options{
				Config:     cfg,
				ConfigPath: flags.configPath,
				Screen:     flags.screen,
			})
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "Lua file to run as the root component")
	cmd.Flags().StringSliceVarP(&watch, "watch", "w", nil, "paths whose changes are shown on the status line")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "serve Prometheus metrics")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "metrics listen address")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")

	return cmd
}

func newEventsCmd() *cobra.Command {
	var (
		group  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the event kinds components can await",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []events.TableEntry
			for _, e := range events.Table {
				if group == "" || e.Group == group {
					entries = append(entries, e)
				}
			}
			if len(entries) == 0 {
				return fmt.Errorf("no events in group %q", group)
			}

			switch format {
			case "table":
				return writeEventTable(cmd.OutOrStdout(), entries)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(eventDocs(entries)); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want table or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "only list one group (element, edit)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or yaml")

	return cmd
}

func writeEventTable(w io.Writer, entries []events.TableEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tACCESSOR\tPAYLOAD\tGROUP\tBUBBLES\tTARGETS")
	for _, e := range entries {
		targets := "*"
		if len(e.Targets) > 0 {
			targets = strings.Join(e.Targets, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			e.Kind, e.Accessor, e.Payload, e.Group, events.Bubbles(e.Kind), targets)
	}
	return tw.Flush()
}

// eventDoc is the YAML shape of one event.
type eventDoc struct {
	Kind     string   `yaml:"kind"`
	Accessor string   `yaml:"accessor"`
	Payload  string   `yaml:"payload"`
	Group    string   `yaml:"group"`
	Bubbles  bool     `yaml:"bubbles"`
	Targets  []string `yaml:"targets,omitempty"`
}

func eventDocs(entries []events.TableEntry) []eventDoc {
	docs := make([]eventDoc, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, eventDoc{
			Kind:     string(e.Kind),
			Accessor: e.Accessor,
			Payload:  e.Payload,
			Group:    e.Group,
			Bubbles:  events.Bubbles(e.Kind),
			Targets:  e.Targets,
		})
	}
	return docs
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var env bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if env {
				names := config.EnvVars()
				slices.Sort(names)
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&env, "env", false, "list the environment variables that override settings")

	return cmd
}
