// Package cli implements the todorpg commands.
package cli

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "todorpg",
		Short: "Defeat your todo list one long-press at a time",
		Long: `todorpg turns task lists into enemies. Hold a task to strike it;
clear every task in a block to defeat the enemy and earn experience or gold.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is the user config dir)")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "database file, overrides the config")

	// Add subcommands (alphabetical)
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newPresetsCmd(flags))
	cmd.AddCommand(newResetProgressCmd(flags))
	cmd.AddCommand(newWipeCmd(flags))
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}
