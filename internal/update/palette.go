package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todorpg/internal/commands"
	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/model"
)

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return nil
	case "enter":
		input := m.palette.Value()
		m.closeOverlay()
		m.runCommand(input)
		return nil
	}
	var cmd tea.Cmd
	m.palette, cmd = m.palette.Update(msg)
	return cmd
}

// runCommand parses and executes one palette line, reporting the outcome in
// the status bar.
func (m *Model) runCommand(input string) {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	res, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		var ce *commands.CommandError
		if !errors.As(err, &ce) {
			m.logger.Warn("command failed", "command", cmd.Type, "error", err)
		}
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if res.Message != "" {
		m.Status = StatusBar{Text: res.Message}
	}
}

func (m *Model) commandHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.dispatch(game.CreateBlock{Title: a.Input.Title, Texts: a.Input.Texts})
			return commands.Result{Message: "a new enemy appears"}, nil
		},
		Append: func(a commands.AppendArgs) (commands.Result, error) {
			b, ok := m.Store().Block(m.Selected.BlockID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "select an enemy first"}
			}
			if b.Completed {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "this enemy is already defeated"}
			}
			if _, ok := m.dispatch(game.AppendTasks{BlockID: b.ID, Texts: a.Texts}); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no tasks added"}
			}
			return commands.Result{Message: pluralTasks(len(a.Texts)) + " added"}, nil
		},
		Remove: func(commands.RemoveArgs) (commands.Result, error) {
			if _, ok := m.Store().Block(m.Selected.BlockID); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "select an enemy first"}
			}
			m.dispatch(game.RemoveBlock{BlockID: m.Selected.BlockID})
			return commands.Result{Message: "enemy removed"}, nil
		},
		Preset: m.runPreset,
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			target := m.Mode.Toggle()
			if a.Target != "" {
				target = model.Mode(a.Target)
			}
			m.switchMode(target)
			return commands.Result{}, nil
		},
	}
}

func (m *Model) runPreset(a commands.PresetArgs) (commands.Result, error) {
	switch a.Action {
	case commands.PresetList:
		m.openOverlay(OverlayPresets)
		return commands.Result{}, nil
	case commands.PresetSave:
		p := model.Preset{Name: strings.TrimSpace(a.Name), Body: strings.TrimSpace(a.Body)}
		if err := p.Validate(); err != nil {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
		}
		next := model.UpsertPreset(m.Presets, p)
		if err := m.state.SavePresets(m.ctx, next); err != nil {
			m.logger.Error("save presets", "error", err)
			return commands.Result{}, fmt.Errorf("save presets: %w", err)
		}
		m.Presets = next
		return commands.Result{Message: fmt.Sprintf("preset %q saved", p.Name)}, nil
	case commands.PresetUse:
		p, ok := model.FindPreset(m.Presets, a.Name)
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no preset named %q", a.Name)}
		}
		in := commands.ParseBulkInput(p.Body)
		if len(in.Texts) == 0 && in.Title == "" {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("preset %q is empty", p.Name)}
		}
		m.dispatch(game.CreateBlock{Title: in.Title, Texts: in.Texts})
		return commands.Result{Message: fmt.Sprintf("summoned %q", p.Name)}, nil
	case commands.PresetRm:
		next, ok := model.RemovePreset(m.Presets, a.Name)
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no preset named %q", a.Name)}
		}
		if err := m.state.SavePresets(m.ctx, next); err != nil {
			m.logger.Error("save presets", "error", err)
			return commands.Result{}, fmt.Errorf("save presets: %w", err)
		}
		m.Presets = next
		return commands.Result{Message: fmt.Sprintf("preset %q removed", a.Name)}, nil
	default:
		return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown preset action: %s", a.Action)}
	}
}
