package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// newRootCommand constructs the top-level "pgrep" command, grounded on
// cmd/desync/root.go's newRootCommand (persistent flags, no own logic). It
// also carries the search flags and RunE directly, so a bare
// `pgrep PATTERN [target...]` runs a search without the "search"
// subcommand, matching grep's own calling convention; `pgrep search ...`
// remains available as an explicit alias.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pgrep PATTERN [target...]",
		Short: "Parallel, grep-compatible line search.",
		Args:  cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				enableVerboseLogging()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/pgrep/config.json)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose mode")
	opt := addSearchFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runSearch(cmd.Context(), *opt, args)
	}
	cmd.AddCommand(newSearchCommand())
	return cmd
}
