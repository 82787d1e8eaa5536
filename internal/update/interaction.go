package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todorpg/internal/effects"
	"github.com/sandeepkv93/todorpg/internal/press"
	"github.com/sandeepkv93/todorpg/internal/scheduler"
	"github.com/sandeepkv93/todorpg/internal/views"
)

var phaseKinds = []string{string(press.PhaseMedium), string(press.PhaseHard), string(press.PhaseCompleted)}

// keyHoldGrace must exceed the terminal's initial auto-repeat delay.
func (m *Model) keyHoldGrace() time.Duration {
	return m.cfg.KeyHoldGrace()
}

// beginPress starts a gesture on the target task and arms its deadlines.
func (m *Model) beginPress(target press.Target) (press.Gesture, tea.Cmd) {
	b, ok := m.Store().Block(target.BlockID)
	if !ok {
		return press.Gesture{}, nil
	}
	t, ok := b.Task(target.TaskID)
	if !ok {
		return press.Gesture{}, nil
	}
	if m.press.Active() {
		m.releasePress()
	}
	g, ok := m.press.Begin(target, t.Done, m.clock.Now())
	if !ok {
		return press.Gesture{}, nil
	}
	cmds := make([]tea.Cmd, 0, len(phaseKinds)+1)
	for i, at := range g.Deadlines() {
		cmds = append(cmds, m.arm(scheduler.Event{
			ID:        m.deps.NewID(),
			Group:     groupPress,
			Kind:      phaseKinds[i],
			Key:       target.TaskID,
			Gen:       g.Gen,
			TriggerAt: at,
		}))
	}
	cmds = append(cmds, m.animate())
	return g, tea.Batch(cmds...)
}

// releasePress cancels the current gesture and every deadline armed for it.
func (m *Model) releasePress() {
	m.hold = keyHold{}
	if !m.press.Release() {
		return
	}
	if m.engine != nil {
		m.engine.CancelGroup(groupPress)
	}
}

// arm schedules ev on the engine, or through tea.Tick when there is none.
func (m *Model) arm(ev scheduler.Event) tea.Cmd {
	if m.engine != nil {
		err := m.engine.Schedule(ev)
		if err == nil {
			return nil
		}
		m.logger.Warn("engine schedule failed, using tick", "kind", ev.Kind, "error", err)
	}
	wait := max(ev.TriggerAt.Sub(m.clock.Now()), 0)
	return tea.Tick(wait, func(time.Time) tea.Msg { return DeadlineMsg{Event: ev} })
}

func (m *Model) handleDeadline(ev scheduler.Event) tea.Cmd {
	switch ev.Group {
	case groupPress:
		step := m.press.Advance(ev.Gen, m.clock.Now())
		if step.Complete == nil {
			return nil
		}
		m.hold = keyHold{}
		cmd, _ := m.dispatch(*step.Complete)
		return cmd
	case groupEffects:
		if ev.Kind != kindEffectShow {
			m.fx.Expire(effects.Kind(ev.Kind), ev.Key)
		}
		return nil
	}
	return nil
}

func (m *Model) handlePressKey() tea.Cmd {
	sel := m.Selected
	if sel.TaskID == "" {
		return nil
	}
	now := m.clock.Now()
	if m.hold.active && m.press.Holding(sel.TaskID) {
		m.hold.last = now
		return nil
	}
	g, cmd := m.beginPress(press.Target{BlockID: sel.BlockID, TaskID: sel.TaskID})
	if g.Gen == 0 {
		return cmd
	}
	m.hold = keyHold{active: true, gen: g.Gen, last: now}
	return tea.Batch(cmd, keyHoldCheckCmd(g.Gen, m.keyHoldGrace()))
}

func (m *Model) handleKeyHoldCheck(msg keyHoldCheckMsg) tea.Cmd {
	if !m.hold.active || m.hold.gen != msg.Gen {
		return nil
	}
	cur, ok := m.press.Current()
	if !ok || cur.Gen != msg.Gen {
		m.hold = keyHold{}
		return nil
	}
	idle := m.clock.Now().Sub(m.hold.last)
	if idle >= m.keyHoldGrace() {
		m.releasePress()
		return nil
	}
	return keyHoldCheckCmd(msg.Gen, m.keyHoldGrace()-idle)
}

func (m *Model) releaseKeyHold() {
	if m.hold.active {
		m.releasePress()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.Overlay == OverlayHelp {
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return cmd
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.board.ScrollUp(3)
			return nil
		case tea.MouseButtonWheelDown:
			m.board.ScrollDown(3)
			return nil
		case tea.MouseButtonLeft:
		default:
			return nil
		}
		ref, ok := m.rowAt(msg.Y)
		if !ok || ref.BlockID == "" {
			return nil
		}
		m.hold = keyHold{}
		m.Selected = Selection{BlockID: ref.BlockID, TaskID: ref.TaskID}
		if ref.TaskID == "" {
			return nil
		}
		_, cmd := m.beginPress(press.Target{BlockID: ref.BlockID, TaskID: ref.TaskID})
		return cmd
	case tea.MouseActionRelease:
		if !m.hold.active {
			m.releasePress()
		}
	case tea.MouseActionMotion:
		cur, ok := m.press.Current()
		if !ok || m.hold.active {
			return nil
		}
		ref, ok := m.rowAt(msg.Y)
		if !ok || ref.TaskID != cur.Target.TaskID {
			// pointer left the task
			m.releasePress()
		}
	}
	return nil
}

// rowAt maps a screen row to the board line shown there.
func (m *Model) rowAt(y int) (views.RowRef, bool) {
	if m.Overlay != OverlayNone && m.Overlay != OverlayPalette && m.Overlay != OverlayPresets {
		return views.RowRef{}, false
	}
	top := views.BoardTop(m.headerView())
	line := y - top
	if line < 0 || line >= m.board.Height {
		return views.RowRef{}, false
	}
	idx := line + m.board.YOffset
	if idx < 0 || idx >= len(m.rows) {
		return views.RowRef{}, false
	}
	return m.rows[idx], true
}

// handleFrame redraws, sweeps lapsed effects and advances a held press so a
// lost deadline cannot leave it stuck.
func (m *Model) handleFrame() tea.Cmd {
	m.frame++
	now := m.clock.Now()
	m.fx.Sweep(now)
	var done tea.Cmd
	if g, ok := m.press.Current(); ok {
		if step := m.press.Advance(g.Gen, now); step.Complete != nil {
			m.hold = keyHold{}
			done, _ = m.dispatch(*step.Complete)
		}
	}
	if m.press.Active() || m.fx.Len() > 0 || len(m.confetti.Active()) > 0 {
		return tea.Batch(done, frameCmd())
	}
	m.animating = false
	return done
}

// animate starts the redraw loop if it is not already running.
func (m *Model) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return frameCmd()
}
