package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todorpg/internal/model"
	"github.com/sandeepkv93/todorpg/internal/progression"
)

func newResetProgressCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-progress",
		Short: "Reset daily experience and level now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			st, err := s.state.LoadStore(ctx, model.ModeDaily)
			if err != nil {
				return fmt.Errorf("failed to load daily board: %w", err)
			}
			st.Progress = progression.Reset(st.Progress)
			if err := s.state.SaveStore(ctx, model.ModeDaily, st); err != nil {
				return fmt.Errorf("failed to save daily board: %w", err)
			}
			now := time.Now()
			if err := s.state.SaveLastReset(ctx, now); err != nil {
				return fmt.Errorf("failed to stamp reset: %w", err)
			}
			s.logger.Info("daily progress reset from cli")
			next := progression.NextResetAfter(now, s.cfg.Rules.ResetHour)
			fmt.Fprintf(cmd.OutOrStdout(), "Daily progress reset. Next automatic reset at %s\n", next.Format("Mon 15:04"))
			return nil
		},
	}
}
