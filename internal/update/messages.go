package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todorpg/internal/config"
	"github.com/sandeepkv93/todorpg/internal/scheduler"
)

// DeadlineMsg carries a timer that fired through tea.Tick.
type DeadlineMsg struct {
	Event scheduler.Event
}

// EngineEventMsg carries a timer delivered by the scheduler engine.
type EngineEventMsg struct {
	Event scheduler.Event
}

type ResetPollMsg struct{}

type ConfigReloadedMsg struct {
	Config config.Config
}

type keyHoldCheckMsg struct {
	Gen uint64
}

type frameMsg struct{}

// ClearStatusMsg clears the status line if it still shows status Seq.
type ClearStatusMsg struct {
	Seq uint64
}

// AppErrorMsg reports a failure from outside the update loop, such as a
// desktop notification that could not be shown.
type AppErrorMsg struct {
	Err error
}

const (
	groupPress   = "press"
	groupEffects = "effects"

	kindEffectShow = "show"

	frameInterval = 80 * time.Millisecond

	// statusTTL is how long informational status text stays up. Errors stay
	// until replaced.
	statusTTL = 4 * time.Second
)

func waitForEngineCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EngineEventMsg{Event: ev}
	}
}

func resetPollCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return ResetPollMsg{} })
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func keyHoldCheckCmd(gen uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return keyHoldCheckMsg{Gen: gen} })
}

func clearStatusCmd(seq uint64) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}
