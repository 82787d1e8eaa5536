package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPresetsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			list, err := s.state.LoadPresets(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load presets: %w", err)
			}
			w := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(w, "No presets. Save one in the app with: /preset save <name> <tasks>")
				return nil
			}
			for _, p := range list {
				fmt.Fprintf(w, "%-16s %s\n", p.Name, p.Body)
			}
			return nil
		},
	}
}
