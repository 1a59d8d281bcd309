// Command asyncui runs event-driven components in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(nil).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "asyncui: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	logLevel   string

	// screen replaces the terminal in tests.
	screen tcell.Screen
}

func newRootCmd(screen tcell.Screen) *cobra.Command {
	flags := &rootFlags{screen: screen}

	cmd := &cobra.Command{
		Use:           "asyncui",
		Short:         "Await terminal UI events from plain Go and Lua code",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a TOML configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		newRunCmd(flags),
		newEventsCmd(),
		newConfigCmd(flags),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "asyncui %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
