package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docvault/internal/config"
)

// outputFlags carries the persistent output-format selection into
// subcommands.
type outputFlags struct {
	json bool
	yaml bool
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	out := &outputFlags{}
	var logLevel string

	cmd := &cobra.Command{
		Use:   "docvault",
		Short: "Docvault captures, assembles and stores per-user documents",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&out.json, "json", false, "output JSON")
	cmd.PersistentFlags().BoolVar(&out.yaml, "yaml", false, "output YAML")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newSubmitCmd(cfg, out),
		newListCmd(cfg, out),
		newShowCmd(cfg, out),
		newRenameCmd(cfg, out),
		newRmCmd(cfg, out),
		newLoginCmd(cfg, out),
		newLogoutCmd(cfg),
		newUserCmd(cfg, out),
		newConfigCmd(cfg),
		newInfoCmd(cfg, out),
	)

	return cmd
}
