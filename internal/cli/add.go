package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todorpg/internal/commands"
	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/model"
)

func newAddCmd(flags *rootFlags) *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "add ['##title'] <task>...",
		Short: "Add an enemy without opening the TUI",
		Long: `Add parses its arguments like the in-app form: a first word starting with #
is the title and every other word is a task. Quote the title, since most
shells treat an unquoted # as the start of a comment:

  todorpg add '##Chores' dishes laundry`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := commands.ParseBulkInput(strings.Join(args, " "))
			if len(in.Texts) == 0 && in.Title == "" {
				return fmt.Errorf("nothing to add")
			}
			s, err := openSession(flags)
			if err != nil {
				return err
			}
			defer s.Close()

			mode := modeFor(long)
			ctx := cmd.Context()
			st, err := s.state.LoadStore(ctx, mode)
			if err != nil {
				return fmt.Errorf("failed to load %s board: %w", mode, err)
			}
			next, out := game.Apply(st, game.CreateBlock{Title: in.Title, Texts: in.Texts}, game.DefaultDeps())
			if err := s.state.SaveStore(ctx, mode, next); err != nil {
				return fmt.Errorf("failed to save %s board: %w", mode, err)
			}
			s.logger.Info("block added from cli", "block", out.BlockID, "tasks", len(in.Texts), "mode", mode)

			b, _ := next.Block(out.BlockID)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s with %d task(s)\n", blockName(b), len(b.Tasks))
			return nil
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "add to the long-term board")
	return cmd
}

func modeFor(long bool) model.Mode {
	if long {
		return model.ModeLongTerm
	}
	return model.ModeDaily
}

func blockName(b model.Block) string {
	if b.Title != "" {
		return b.Title
	}
	return "an untitled enemy"
}
