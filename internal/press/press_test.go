package press

import (
	"testing"
	"time"

	"github.com/sandeepkv93/todorpg/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0     = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	target = Target{BlockID: "b1", TaskID: "t1"}
)

func TestPhaseAt(t *testing.T) {
	tm := DefaultTiming()
	cases := []struct {
		elapsed time.Duration
		want    Phase
	}{
		{0, PhaseSoft},
		{499 * time.Millisecond, PhaseSoft},
		{500 * time.Millisecond, PhaseMedium},
		{999 * time.Millisecond, PhaseMedium},
		{1000 * time.Millisecond, PhaseHard},
		{1499 * time.Millisecond, PhaseHard},
		{1500 * time.Millisecond, PhaseCompleted},
		{time.Hour, PhaseCompleted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PhaseAt(tc.elapsed, tm), "elapsed %s", tc.elapsed)
	}
}

func TestTimingValidate(t *testing.T) {
	require.NoError(t, DefaultTiming().Validate())
	assert.ErrorIs(t, Timing{Medium: 300 * time.Millisecond, Hard: 300 * time.Millisecond, Complete: 700 * time.Millisecond}.Validate(), ErrInvalidTiming)
	assert.ErrorIs(t, Timing{}.Validate(), ErrInvalidTiming)
	m := NewMachine(Timing{})
	assert.Equal(t, DefaultTiming(), m.Timing())
}

func TestHeldPressEmitsExactlyOnce(t *testing.T) {
	clk := clock.NewFake(t0)
	m := NewMachine(DefaultTiming())
	g, ok := m.Begin(target, false, clk.Now())
	require.True(t, ok)
	assert.Equal(t, PhaseSoft, m.Phase())

	step := m.Advance(g.Gen, clk.Advance(500*time.Millisecond))
	assert.Equal(t, PhaseMedium, step.Phase)
	assert.Nil(t, step.Complete)

	step = m.Advance(g.Gen, clk.Advance(500*time.Millisecond))
	assert.Equal(t, PhaseHard, step.Phase)

	step = m.Advance(g.Gen, clk.Advance(500*time.Millisecond))
	require.NotNil(t, step.Complete)
	assert.Equal(t, "b1", step.Complete.BlockID)
	assert.Equal(t, "t1", step.Complete.TaskID)
	assert.Equal(t, PhaseIdle, m.Phase())

	for i := 0; i < 5; i++ {
		again := m.Advance(g.Gen, clk.Advance(100*time.Millisecond))
		assert.Nil(t, again.Complete, "poll %d", i)
	}
}

func TestReleaseJustBeforeCompleteNeverEmits(t *testing.T) {
	m := NewMachine(DefaultTiming())
	g, _ := m.Begin(target, false, t0)
	m.Advance(g.Gen, t0.Add(500*time.Millisecond))
	m.Advance(g.Gen, t0.Add(1000*time.Millisecond))
	m.Advance(g.Gen, t0.Add(1499*time.Millisecond))
	require.True(t, m.Release())

	step := m.Advance(g.Gen, t0.Add(1500*time.Millisecond))
	assert.Nil(t, step.Complete)
	assert.Equal(t, PhaseIdle, m.Phase())
}

func TestReleaseAfterMediumReturnsIdle(t *testing.T) {
	m := NewMachine(DefaultTiming())
	g, _ := m.Begin(target, false, t0)
	m.Advance(g.Gen, t0.Add(500*time.Millisecond))
	assert.Equal(t, PhaseMedium, m.Phase())

	m.Release()
	assert.Equal(t, PhaseIdle, m.Phase())
	for _, off := range DefaultTiming().Offsets() {
		assert.Nil(t, m.Advance(g.Gen, t0.Add(off)).Complete)
	}
}

func TestJumpStraightToCompleteStillEmitsOnce(t *testing.T) {
	m := NewMachine(DefaultTiming())
	g, _ := m.Begin(target, false, t0)
	step := m.Advance(g.Gen, t0.Add(2*time.Second))
	require.NotNil(t, step.Complete)
	assert.Nil(t, m.Advance(g.Gen, t0.Add(3*time.Second)).Complete)
}

func TestBeginOnDoneTaskIsRejected(t *testing.T) {
	m := NewMachine(DefaultTiming())
	_, ok := m.Begin(target, true, t0)
	assert.False(t, ok)
	assert.Equal(t, PhaseIdle, m.Phase())
}

func TestNewPressCancelsPrevious(t *testing.T) {
	m := NewMachine(DefaultTiming())
	first, _ := m.Begin(target, false, t0)
	second, ok := m.Begin(Target{BlockID: "b1", TaskID: "t2"}, false, t0.Add(200*time.Millisecond))
	require.True(t, ok)
	assert.NotEqual(t, first.Gen, second.Gen)

	assert.Nil(t, m.Advance(first.Gen, t0.Add(5*time.Second)).Complete, "stale timers must not fire")
	assert.True(t, m.Holding("t2"))

	step := m.Advance(second.Gen, t0.Add(1700*time.Millisecond))
	require.NotNil(t, step.Complete)
	assert.Equal(t, "t2", step.Complete.TaskID)
}

func TestOutOfOrderTimerDoesNotRegress(t *testing.T) {
	m := NewMachine(DefaultTiming())
	g, _ := m.Begin(target, false, t0)
	m.Advance(g.Gen, t0.Add(1000*time.Millisecond))
	step := m.Advance(g.Gen, t0.Add(500*time.Millisecond))
	assert.False(t, step.Changed)
	assert.Equal(t, PhaseHard, m.Phase())
}

func TestGestureDeadlinesFollowStartTiming(t *testing.T) {
	m := NewMachine(DefaultTiming())
	g, ok := m.Begin(Target{BlockID: "b", TaskID: "t"}, false, t0)
	require.True(t, ok)
	require.NoError(t, m.SetTiming(Timing{Medium: 100 * time.Millisecond, Hard: 200 * time.Millisecond, Complete: 300 * time.Millisecond}))

	d := g.Deadlines()
	require.Len(t, d, 3)
	assert.Equal(t, t0.Add(1500*time.Millisecond), d[2])

	step := m.Advance(g.Gen, t0.Add(400*time.Millisecond))
	assert.Nil(t, step.Complete, "in-flight gesture keeps its original timing")
}
