package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todorpg/internal/celebrate"
	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/model"
	"github.com/sandeepkv93/todorpg/internal/progression"
	"github.com/sandeepkv93/todorpg/internal/scheduler"
	"github.com/sandeepkv93/todorpg/internal/views"
)

// dispatch runs cmd through the reducer against the active board and applies
// its side effects: rewards, effects, celebrations and persistence. It
// reports whether the board changed.
func (m *Model) dispatch(cmd game.Command) (tea.Cmd, bool) {
	cur := m.Store()
	next, out := game.Apply(cur, cmd, m.deps)
	if !out.Changed {
		m.logger.Debug("command ignored", "command", fmt.Sprintf("%T", cmd))
		return nil, false
	}

	var cmds []tea.Cmd
	switch c := cmd.(type) {
	case game.CreateBlock:
		if next.Blocks[len(next.Blocks)-1].Completed {
			// empty enemies are born defeated and never celebrate
			m.completedOnce[out.BlockID] = true
		}
		m.Selected = Selection{BlockID: out.BlockID}
	case game.CompleteTask:
		cmds = append(cmds, m.strike(c.BlockID))
		var leveled bool
		next.Progress, leveled = progression.Award(next.Progress, m.Mode, m.rules)
		if leveled {
			m.sink.Burst(celebrate.Origin{X: 0.5, Y: 0.1}, celebrate.PaletteLevelUp)
			m.Status = StatusBar{Text: fmt.Sprintf("level up! Lv.%d", next.Progress.Level)}
			m.logger.Info("level up", "level", next.Progress.Level)
		}
	case game.RemoveBlock:
		m.fx.Clear(c.BlockID)
		if g, ok := m.press.Current(); ok && g.Target.BlockID == c.BlockID {
			m.releasePress()
		}
		delete(m.completedOnce, c.BlockID)
		if m.Selected.BlockID == c.BlockID {
			m.Selected = Selection{}
		}
	}

	m.Stores[m.Mode] = next
	m.flavor.Forget(next.Blocks)

	if out.Defeated && !m.completedOnce[out.BlockID] {
		m.completedOnce[out.BlockID] = true
		m.sink.Burst(m.originOf(out.BlockID), celebrate.PaletteDefeat)
		m.Status = StatusBar{Text: "enemy defeated!"}
		m.logger.Info("block defeated", "block", out.BlockID, "mode", m.Mode)
		cmds = append(cmds, m.animate())
	}

	m.logger.Debug("command applied", "command", fmt.Sprintf("%T", cmd), "block", out.BlockID, "mode", m.Mode)
	m.persist(m.Mode)
	return tea.Batch(cmds...), true
}

// strike spawns one effect of every kind on the block and arms their expiry.
func (m *Model) strike(blockID string) tea.Cmd {
	now := m.clock.Now()
	tokens := m.fx.Strike(blockID, now)
	cmds := make([]tea.Cmd, 0, len(tokens)+2)
	for _, tok := range tokens {
		cmds = append(cmds, m.arm(scheduler.Event{
			ID:        tok.ID,
			Group:     groupEffects,
			Kind:      string(tok.Kind),
			Key:       tok.ID,
			TriggerAt: tok.ExpiresAt,
			Droppable: true,
		}))
		if tok.VisibleAt.After(now) {
			cmds = append(cmds, m.arm(scheduler.Event{
				ID:        tok.ID + "-show",
				Group:     groupEffects,
				Kind:      kindEffectShow,
				Key:       tok.ID,
				TriggerAt: tok.VisibleAt,
				Droppable: true,
			}))
		}
	}
	cmds = append(cmds, m.animate())
	return tea.Batch(cmds...)
}

// originOf places a burst on the block's header line, as screen fractions.
func (m *Model) originOf(blockID string) celebrate.Origin {
	top := views.BoardTop(m.headerView())
	for i, ref := range m.rows {
		if ref.BlockID == blockID && ref.TaskID == "" {
			y := top + i - m.board.YOffset
			return celebrate.Origin{X: 0.25, Y: clamp01(float64(y) / float64(max(m.height, 1)))}
		}
	}
	return celebrate.Origin{X: 0.5, Y: 0.5}
}

func clamp01(f float64) float64 {
	return min(max(f, 0), 1)
}

func (m *Model) persist(mode model.Mode) {
	if err := m.state.SaveStore(m.ctx, mode, m.Stores[mode]); err != nil {
		m.fail("save "+string(mode)+" board", err)
	}
}

func (m *Model) fail(what string, err error) {
	m.LastError = err
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %v", what, err), IsError: true}
	m.logger.Error(what, "error", err)
}

func (m *Model) switchMode(mode model.Mode) {
	if !mode.IsValid() || mode == m.Mode {
		return
	}
	m.releasePress()
	m.Mode = mode
	m.Selected = Selection{}
	m.pendingRemove = ""
	m.board.GotoTop()
	if err := m.state.SaveMode(m.ctx, mode); err != nil {
		m.fail("save mode", err)
		return
	}
	label := "daily board"
	if mode == model.ModeLongTerm {
		label = "long-term board"
	}
	m.Status = StatusBar{Text: label}
	m.logger.Info("mode switched", "mode", mode)
}

// moveSelection steps the cursor over block headers and task rows.
func (m *Model) moveSelection(delta int) {
	stops := make([]Selection, 0, len(m.rows))
	for _, ref := range m.rows {
		if ref.BlockID == "" {
			continue
		}
		s := Selection{BlockID: ref.BlockID, TaskID: ref.TaskID}
		if len(stops) > 0 && stops[len(stops)-1] == s {
			continue
		}
		stops = append(stops, s)
	}
	if len(stops) == 0 {
		m.Selected = Selection{}
		return
	}
	idx := -1
	for i, s := range stops {
		if s == m.Selected {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(stops) - 1
	default:
		idx = min(max(idx+delta, 0), len(stops)-1)
	}
	m.Selected = stops[idx]
	m.scrollToSelection()
}

func (m *Model) scrollToSelection() {
	for i, ref := range m.rows {
		if ref.BlockID == m.Selected.BlockID && ref.TaskID == m.Selected.TaskID {
			if i < m.board.YOffset {
				m.board.SetYOffset(i)
			} else if i >= m.board.YOffset+m.board.Height {
				m.board.SetYOffset(i - m.board.Height + 1)
			}
			return
		}
	}
}

// applyDailyReset zeroes the daily experience once per reset boundary.
func (m *Model) applyDailyReset() {
	now := m.clock.Now()
	if !progression.ResetDue(m.LastReset, now, m.rules.ResetHour) {
		return
	}
	daily := m.Stores[model.ModeDaily]
	daily.Progress = progression.Reset(daily.Progress)
	m.Stores[model.ModeDaily] = daily
	m.persist(model.ModeDaily)
	if err := m.state.SaveLastReset(m.ctx, now); err != nil {
		m.fail("save last reset", err)
	}
	m.LastReset = now
	m.logger.Info("daily progress reset", "at", now.Format(time.RFC3339), "next", progression.NextResetAfter(now, m.rules.ResetHour).Format(time.RFC3339))
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	cfg := msg.Config
	if err := cfg.Validate(); err != nil {
		m.fail("reload config", err)
		return
	}
	if err := m.press.SetTiming(cfg.Timing()); err != nil {
		m.fail("reload press timing", err)
		return
	}
	m.fx.SetLifetimes(cfg.Lifetimes())
	m.rules = cfg.ProgressionRules()
	m.cfg = cfg
	m.Status = StatusBar{Text: "config reloaded"}
	m.logger.Info("config applied", "press_complete_ms", cfg.Press.CompleteMs)
}
