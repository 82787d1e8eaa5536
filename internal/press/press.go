// Package press tracks a single long-press gesture on a task and decides when
// it has been held long enough to count as a completed strike.
package press

import (
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/todorpg/internal/game"
)

var ErrInvalidTiming = errors.New("press: invalid timing")

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSoft      Phase = "soft"
	PhaseMedium    Phase = "medium"
	PhaseHard      Phase = "hard"
	PhaseCompleted Phase = "completed"
)

// Timing holds the offsets from press start at which each phase begins.
type Timing struct {
	Medium   time.Duration
	Hard     time.Duration
	Complete time.Duration
}

func DefaultTiming() Timing {
	return Timing{Medium: 500 * time.Millisecond, Hard: 1000 * time.Millisecond, Complete: 1500 * time.Millisecond}
}

func (t Timing) Validate() error {
	if t.Medium <= 0 || t.Hard <= t.Medium || t.Complete <= t.Hard {
		return fmt.Errorf("%w: want 0 < medium < hard < complete, got %s/%s/%s", ErrInvalidTiming, t.Medium, t.Hard, t.Complete)
	}
	return nil
}

// Offsets lists the three escalation points that must be armed at press start.
func (t Timing) Offsets() []time.Duration {
	return []time.Duration{t.Medium, t.Hard, t.Complete}
}

// PhaseAt is the transition function of a held press: the phase reached after
// elapsed time since the gesture began.
func PhaseAt(elapsed time.Duration, t Timing) Phase {
	switch {
	case elapsed >= t.Complete:
		return PhaseCompleted
	case elapsed >= t.Hard:
		return PhaseHard
	case elapsed >= t.Medium:
		return PhaseMedium
	default:
		return PhaseSoft
	}
}

type Target struct {
	BlockID string
	TaskID  string
}

// Gesture identifies one press from start to release or completion.
type Gesture struct {
	Gen     uint64
	Target  Target
	Started time.Time
	Timing  Timing
}

// Deadlines returns the absolute times at which the gesture escalates.
func (g Gesture) Deadlines() []time.Time {
	offsets := g.Timing.Offsets()
	out := make([]time.Time, len(offsets))
	for i, d := range offsets {
		out[i] = g.Started.Add(d)
	}
	return out
}

// Step is the result of advancing the machine.
type Step struct {
	Phase   Phase
	Changed bool
	// Complete is non-nil exactly once per gesture, when the hold reaches the
	// completion offset.
	Complete *game.CompleteTask
}

type Machine struct {
	timing  Timing
	phase   Phase
	gen     uint64
	gesture Gesture
}

func NewMachine(t Timing) *Machine {
	if t.Validate() != nil {
		t = DefaultTiming()
	}
	return &Machine{timing: t, phase: PhaseIdle}
}

func (m *Machine) Timing() Timing { return m.timing }

// SetTiming applies to the next gesture. An in-flight gesture keeps the timing
// it started with.
func (m *Machine) SetTiming(t Timing) error {
	if err := t.Validate(); err != nil {
		return err
	}
	m.timing = t
	return nil
}

func (m *Machine) Phase() Phase { return m.phase }

func (m *Machine) Active() bool { return m.phase != PhaseIdle }

// Current returns the gesture in progress, if any.
func (m *Machine) Current() (Gesture, bool) {
	if !m.Active() {
		return Gesture{}, false
	}
	return m.gesture, true
}

// Holding reports whether the given task is the one being pressed.
func (m *Machine) Holding(taskID string) bool {
	return m.Active() && m.gesture.Target.TaskID == taskID
}

// Begin starts a new gesture, cancelling any gesture already in progress.
// Presses on tasks that are already done are rejected without a state change.
func (m *Machine) Begin(target Target, taskDone bool, now time.Time) (Gesture, bool) {
	if taskDone || target.TaskID == "" || target.BlockID == "" {
		return Gesture{}, false
	}
	m.Release()
	m.gen++
	m.gesture = Gesture{Gen: m.gen, Target: target, Started: now, Timing: m.timing}
	m.phase = PhaseSoft
	return m.gesture, true
}

// Release ends the current gesture without emitting anything. Every timer
// armed for it becomes stale.
func (m *Machine) Release() bool {
	if !m.Active() {
		return false
	}
	m.phase = PhaseIdle
	m.gen++
	m.gesture = Gesture{}
	return true
}

// Advance moves the gesture identified by gen to the phase implied by now.
// Stale generations and idle machines are ignored.
func (m *Machine) Advance(gen uint64, now time.Time) Step {
	if !m.Active() || gen != m.gesture.Gen {
		return Step{Phase: m.phase}
	}
	next := PhaseAt(now.Sub(m.gesture.Started), m.gesture.Timing)
	if rank(next) <= rank(m.phase) {
		return Step{Phase: m.phase}
	}
	if next != PhaseCompleted {
		m.phase = next
		return Step{Phase: next, Changed: true}
	}
	cmd := game.CompleteTask{BlockID: m.gesture.Target.BlockID, TaskID: m.gesture.Target.TaskID}
	m.Release()
	return Step{Phase: PhaseIdle, Changed: true, Complete: &cmd}
}

func rank(p Phase) int {
	switch p {
	case PhaseSoft:
		return 1
	case PhaseMedium:
		return 2
	case PhaseHard:
		return 3
	case PhaseCompleted:
		return 4
	default:
		return 0
	}
}
