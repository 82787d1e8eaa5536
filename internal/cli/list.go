package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/model"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List enemies and their tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			mode := modeFor(long)
			st, err := s.state.LoadStore(cmd.Context(), mode)
			if err != nil {
				return fmt.Errorf("failed to load %s board: %w", mode, err)
			}
			printStore(cmd.OutOrStdout(), mode, st)
			return nil
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "list the long-term board")
	return cmd
}

func printStore(w io.Writer, mode model.Mode, st model.Store) {
	if mode == model.ModeLongTerm {
		fmt.Fprintf(w, "Long-term board  gold %d\n", st.Progress.Gold)
	} else {
		fmt.Fprintf(w, "Daily board  Lv.%d  exp %d\n", st.Progress.Level, st.Progress.Exp)
	}
	blocks := st.Newest()
	if len(blocks) == 0 {
		fmt.Fprintln(w, "No enemies. Add one with: todorpg add ##Title task task")
		return
	}
	for _, b := range blocks {
		status := ""
		if b.Completed {
			status = "  defeated"
		}
		fmt.Fprintf(w, "\n%s  %s %d/%d%s\n", blockName(b), game.HPGlyphs(b), b.HP, b.Max, status)
		for _, t := range b.Tasks {
			mark := "[ ]"
			if t.Done {
				mark = "[x]"
			}
			fmt.Fprintf(w, "  %s %s\n", mark, t.Text)
		}
	}
}
