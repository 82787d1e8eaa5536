package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWipeCmd(flags *rootFlags) *cobra.Command {
	var (
		yes    bool
		schema bool
	)
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete all boards, presets and progress",
		Long: `Wipe deletes every saved board, preset and counter. With --schema the
database tables are dropped and recreated, which also repairs a damaged schema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("wipe deletes everything; rerun with --yes to confirm")
			}
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			if schema {
				if err := s.kv.RebuildSchema(); err != nil {
					return err
				}
				s.logger.Info("schema rebuilt from cli")
				fmt.Fprintln(w, "Database schema rebuilt. Everything was deleted.")
				return nil
			}
			removed, err := s.state.Wipe(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Deleted %d saved item(s).\n", len(removed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting everything")
	cmd.Flags().BoolVar(&schema, "schema", false, "drop and recreate the database tables")
	return cmd
}
