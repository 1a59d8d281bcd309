// Command eventgen generates typed event accessors from an event table.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/asyncui/internal/eventgen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "eventgen: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		in    string
		out   string
		opts  eventgen.Options
		quiet bool
	)

	cmd := &cobra.Command{
		Use:           "eventgen",
		Short:         "Generate typed event accessors from a YAML table",
		Example:       "  eventgen --in events.yaml --out zz_generated_events.go\n  eventgen --check",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !quiet {
				opts.Log = cmd.OutOrStdout()
			}
			return eventgen.New(opts).Generate(in, out)
		},
	}

	cmd.Flags().StringVar(&in, "in", "events.yaml", "event table to read")
	cmd.Flags().StringVar(&out, "out", "zz_generated_events.go", "Go file to write")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "render without writing")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "fail if the output is stale")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")

	return cmd
}
