package update

import (
	"time"

	"github.com/sandeepkv93/todorpg/internal/effects"
	"github.com/sandeepkv93/todorpg/internal/game"
	"github.com/sandeepkv93/todorpg/internal/model"
	"github.com/sandeepkv93/todorpg/internal/press"
	"github.com/sandeepkv93/todorpg/internal/progression"
	"github.com/sandeepkv93/todorpg/internal/views"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	body := m.board.View()
	if m.Overlay == OverlayHelp {
		body = m.helpView.View()
	}
	return views.RenderApp(views.AppData{
		Header:        m.headerView(),
		Confetti:      m.confettiView(),
		Board:         body,
		Overlay:       m.overlayView(),
		StatusLine:    m.Status.Text,
		StatusIsError: m.Status.IsError,
		Footer:        m.help.View(m.keys),
		Width:         m.width,
	})
}

func (m *Model) headerView() string {
	st := m.Store()
	defeated := 0
	for _, b := range st.Blocks {
		if b.Completed {
			defeated++
		}
	}
	return views.RenderHeader(views.HeaderData{
		Mode:         string(m.Mode),
		Level:        st.Progress.Level,
		Exp:          st.Progress.Exp,
		Need:         m.rules.Threshold(st.Progress.Level),
		Gold:         st.Progress.Gold,
		ProgressView: m.xp.ViewAs(progression.Ratio(st.Progress, m.rules)),
		Blocks:       len(st.Blocks),
		Defeated:     defeated,
	})
}

func (m *Model) confettiView() string {
	shots := m.confetti.Active()
	if len(shots) == 0 {
		return ""
	}
	now := m.clock.Now()
	ttl := m.confetti.TTL()
	out := make([]views.ConfettiShot, 0, len(shots))
	for _, s := range shots {
		out = append(out, views.ConfettiShot{
			X:      s.Origin.X,
			Colors: s.Palette,
			Seed:   s.Seed,
			Age:    float64(now.Sub(s.At)) / float64(ttl),
		})
	}
	return views.RenderConfetti(out, m.width)
}

func (m *Model) overlayView() string {
	switch m.Overlay {
	case OverlayCreate:
		return views.RenderInputPanel(views.InputPanelData{
			Title: "Summon an enemy",
			Body:  m.bulk.View(),
			Hint:  "ctrl+s summon · esc cancel · #Title marks the name",
		})
	case OverlayAppend:
		title := "Add tasks"
		if b, ok := m.Store().Block(m.Selected.BlockID); ok && b.Title != "" {
			title = "Add tasks to " + b.Title
		}
		return views.RenderInputPanel(views.InputPanelData{
			Title: title,
			Body:  m.bulk.View(),
			Hint:  "ctrl+s add · esc cancel",
		})
	case OverlayPalette:
		return views.RenderCommandPalette(true, m.palette.View())
	case OverlayPresets:
		rows := make([]views.PresetRowData, 0, len(m.Presets))
		for _, p := range m.Presets {
			rows = append(rows, views.PresetRowData{Name: p.Name, Body: p.Body})
		}
		return views.RenderPresetList(rows, m.board.Width)
	}
	return ""
}

// syncBoard re-renders the board into the viewport and records which line
// shows which block or task.
func (m *Model) syncBoard() {
	now := m.clock.Now()
	st := m.Store()
	if _, ok := st.Block(m.Selected.BlockID); !ok {
		m.Selected = Selection{}
	}

	gesture, pressing := m.press.Current()
	blocks := st.Newest()
	data := views.BoardData{Width: m.board.Width, Frame: m.frame, Blocks: make([]views.BlockPanelData, 0, len(blocks))}
	for _, b := range blocks {
		data.Blocks = append(data.Blocks, m.blockPanel(b, gesture, pressing, now))
	}
	content, rows := views.RenderBoard(data)
	m.rows = rows
	m.board.SetContent(content)
}

func (m *Model) blockPanel(b model.Block, g press.Gesture, pressing bool, now time.Time) views.BlockPanelData {
	hit := m.fx.Has(effects.KindHit, b.ID, now)
	popups := 0
	for _, tok := range m.fx.Active(effects.KindPopup, b.ID) {
		if tok.VisibleAtTime(now) {
			popups++
		}
	}
	panel := views.BlockPanelData{
		ID:        b.ID,
		Title:     b.Title,
		Icon:      game.Icon(b, hit),
		Bubble:    m.flavor.Line(b, hit),
		HPGlyphs:  game.HPGlyphs(b),
		HP:        b.HP,
		Max:       b.Max,
		Completed: b.Completed,
		Selected:  m.Selected.BlockID == b.ID && m.Selected.TaskID == "",
		Hit:       hit,
		Slash:     m.fx.Has(effects.KindSlash, b.ID, now),
		Popups:    min(popups, 3),
		Blast:     m.fx.Has(effects.KindBlast, b.ID, now),
		Tasks:     make([]views.TaskRowData, 0, len(b.Tasks)),
	}
	for _, t := range b.Tasks {
		row := views.TaskRowData{
			ID:       t.ID,
			Text:     t.Text,
			Done:     t.Done,
			Selected: m.Selected.BlockID == b.ID && m.Selected.TaskID == t.ID,
		}
		if pressing && g.Target.TaskID == t.ID && g.Target.BlockID == b.ID {
			row.Phase = string(m.press.Phase())
			if total := g.Timing.Complete; total > 0 {
				row.Charge = float64(now.Sub(g.Started)) / float64(total)
			}
		}
		panel.Tasks = append(panel.Tasks, row)
	}
	return panel
}

func renderHelp(width int) string {
	return views.RenderMarkdown(helpMarkdown, width)
}
