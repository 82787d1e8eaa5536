package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todorpg/internal/commands"
	"github.com/sandeepkv93/todorpg/internal/game"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		func() tea.Msg { return ResetPollMsg{} },
	}
	if m.engine != nil {
		cmds = append(cmds, waitForEngineCmd(m.engine.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.Status
	cmd := m.update(msg)
	if m.Status != before {
		m.statusSeq++
		if m.Status.Text != "" && !m.Status.IsError {
			cmd = tea.Batch(cmd, clearStatusCmd(m.statusSeq))
		}
	}
	m.syncBoard()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.MouseMsg:
		return m.handleMouse(typed)
	case EngineEventMsg:
		return tea.Batch(m.handleDeadline(typed.Event), waitForEngineCmd(m.engine.C()))
	case DeadlineMsg:
		return m.handleDeadline(typed.Event)
	case keyHoldCheckMsg:
		return m.handleKeyHoldCheck(typed)
	case frameMsg:
		return m.handleFrame()
	case ResetPollMsg:
		m.applyDailyReset()
		return resetPollCmd(m.cfg.ResetPoll())
	case ConfigReloadedMsg:
		m.applyConfig(typed)
		return nil
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail("background task", typed.Err)
		}
		return nil
	}

	var cmd tea.Cmd
	switch m.Overlay {
	case OverlayCreate, OverlayAppend:
		m.bulk, cmd = m.bulk.Update(msg)
	case OverlayPalette:
		m.palette, cmd = m.palette.Update(msg)
	}
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	switch m.Overlay {
	case OverlayCreate, OverlayAppend:
		return m.handleBulkKey(msg)
	case OverlayPalette:
		return m.handlePaletteKey(msg)
	case OverlayHelp, OverlayPresets:
		switch {
		case msg.String() == "esc", key.Matches(msg, m.keys.Help) && m.Overlay == OverlayHelp,
			key.Matches(msg, m.keys.Presets) && m.Overlay == OverlayPresets, key.Matches(msg, m.keys.Quit):
			m.closeOverlay()
			return nil
		}
		if m.Overlay == OverlayHelp {
			var cmd tea.Cmd
			m.helpView, cmd = m.helpView.Update(msg)
			return cmd
		}
		return nil
	}

	if key.Matches(msg, m.keys.Press) {
		return m.handlePressKey()
	}
	// Any other key ends a keyboard press.
	m.releaseKeyHold()

	if !key.Matches(msg, m.keys.Remove) {
		m.pendingRemove = ""
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.board.HalfPageUp()
	case key.Matches(msg, m.keys.PageDn):
		m.board.HalfPageDown()
	case key.Matches(msg, m.keys.New):
		m.openBulk(OverlayCreate, "")
	case key.Matches(msg, m.keys.Append):
		m.openAppend()
	case key.Matches(msg, m.keys.Remove):
		m.confirmRemove()
	case key.Matches(msg, m.keys.Mode):
		m.switchMode(m.Mode.Toggle())
	case key.Matches(msg, m.keys.Presets):
		m.openOverlay(OverlayPresets)
	case key.Matches(msg, m.keys.Palette):
		m.openPalette()
	case key.Matches(msg, m.keys.Help):
		m.openHelp()
	case msg.String() == "esc":
		m.Status = StatusBar{}
	}
	return nil
}

func (m *Model) handleBulkKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		return nil
	case "ctrl+s", "alt+enter":
		m.submitBulk()
		return nil
	}
	var cmd tea.Cmd
	m.bulk, cmd = m.bulk.Update(msg)
	return cmd
}

func (m *Model) submitBulk() {
	target := m.Overlay
	in := commands.ParseBulkInput(m.bulk.Value())
	if target == OverlayAppend {
		in = commands.BulkInput{Texts: commands.ParseTaskList(m.bulk.Value())}
	}
	if len(in.Texts) == 0 && (target == OverlayAppend || in.Title == "") {
		m.Status = StatusBar{Text: "nothing to add", IsError: true}
		return
	}
	blockID := m.Selected.BlockID
	m.closeOverlay()
	if target == OverlayAppend {
		if _, ok := m.dispatch(game.AppendTasks{BlockID: blockID, Texts: in.Texts}); !ok {
			m.Status = StatusBar{Text: "no tasks added: the enemy is gone or already defeated", IsError: true}
			return
		}
		m.Status = StatusBar{Text: pluralTasks(len(in.Texts)) + " added"}
		return
	}
	m.dispatch(game.CreateBlock{Title: in.Title, Texts: in.Texts})
	m.Status = StatusBar{Text: "a new enemy appears"}
}

func (m *Model) quit() tea.Cmd {
	m.releasePress()
	m.Quitting = true
	return tea.Quit
}

func (m *Model) openOverlay(o Overlay) {
	m.releasePress()
	m.Overlay = o
	m.resize(m.width, m.height)
}

func (m *Model) closeOverlay() {
	m.bulk.Blur()
	m.palette.Blur()
	m.Overlay = OverlayNone
	m.resize(m.width, m.height)
}

func (m *Model) openBulk(o Overlay, initial string) {
	m.openOverlay(o)
	m.bulk.Reset()
	if initial != "" {
		m.bulk.SetValue(initial)
	}
	m.bulk.Focus()
}

func (m *Model) openAppend() {
	b, ok := m.Store().Block(m.Selected.BlockID)
	if !ok {
		m.Status = StatusBar{Text: "select an enemy first", IsError: true}
		return
	}
	if b.Completed {
		m.Status = StatusBar{Text: "this enemy is already defeated", IsError: true}
		return
	}
	m.openBulk(OverlayAppend, "")
}

func (m *Model) openPalette() {
	m.openOverlay(OverlayPalette)
	m.palette.SetValue("")
	m.palette.Focus()
}

func (m *Model) openHelp() {
	m.openOverlay(OverlayHelp)
	m.helpView.SetContent(renderHelp(m.helpView.Width))
	m.helpView.GotoTop()
}

func (m *Model) confirmRemove() {
	id := m.Selected.BlockID
	if id == "" {
		return
	}
	if m.pendingRemove != id {
		m.pendingRemove = id
		m.Status = StatusBar{Text: "press d again to remove this enemy"}
		return
	}
	m.pendingRemove = ""
	m.dispatch(game.RemoveBlock{BlockID: id})
	m.Status = StatusBar{Text: "enemy removed"}
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
