package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Event{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineDropsDroppableEventsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{
			ID:        "fx",
			Group:     "effects",
			TriggerAt: now,
			Droppable: true,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() != 24 {
		t.Fatalf("expected 24 dropped events, got %d", engine.Dropped())
	}
	if engine.Pending() != 0 {
		t.Fatalf("dropped events must not stay pending, pending=%d", engine.Pending())
	}
}

func TestEngineRetriesUndroppableEventsUntilConsumed(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(10 * time.Millisecond)
	for _, kind := range []string{"medium", "hard", "completed"} {
		if err := engine.Schedule(Event{ID: kind, Group: "press", Kind: kind, Gen: 1, TriggerAt: now}); err != nil {
			t.Fatalf("schedule %s: %v", kind, err)
		}
	}

	// Let the buffer fill before draining it.
	time.Sleep(60 * time.Millisecond)
	var kinds []string
	for range 3 {
		kinds = append(kinds, waitEvent(t, engine.C(), time.Second).Kind)
	}
	if kinds[0] != "medium" || kinds[1] != "hard" || kinds[2] != "completed" {
		t.Fatalf("unexpected delivery order: %v", kinds)
	}
	if engine.Dropped() != 0 {
		t.Fatalf("undroppable events were dropped: %d", engine.Dropped())
	}
	if engine.Deferred() == 0 {
		t.Fatal("expected deferred delivery attempts while the buffer was full")
	}
}

func TestCancelGroupRemovesDeferredEvents(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(5 * time.Millisecond)
	for _, id := range []string{"a", "b"} {
		if err := engine.Schedule(Event{ID: id, Group: "press", TriggerAt: now}); err != nil {
			t.Fatalf("schedule %s: %v", id, err)
		}
	}
	time.Sleep(50 * time.Millisecond)
	if got := engine.CancelGroup("press"); got != 1 {
		t.Fatalf("CancelGroup removed %d, want the 1 waiting for retry", got)
	}
	waitEvent(t, engine.C(), time.Second)
	select {
	case ev := <-engine.C():
		t.Fatalf("cancelled event delivered: %+v", ev)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func TestCancelGroupRemovesOnlyThatGroup(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	for _, off := range []time.Duration{30, 60, 90} {
		if err := engine.Schedule(Event{ID: "press", Group: "press", Gen: 1, TriggerAt: now.Add(off * time.Millisecond)}); err != nil {
			t.Fatalf("schedule press: %v", err)
		}
	}
	if err := engine.Schedule(Event{ID: "fx", Group: "effects", TriggerAt: now.Add(50 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule fx: %v", err)
	}

	if got := engine.CancelGroup("press"); got != 3 {
		t.Fatalf("CancelGroup removed %d, want 3", got)
	}
	if got := engine.CancelGroup("press"); got != 0 {
		t.Fatalf("second CancelGroup removed %d, want 0", got)
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Group != "effects" {
		t.Fatalf("unexpected event after cancel: %+v", ev)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("cancelled event delivered: %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
	if engine.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", engine.Pending())
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Event{ID: "late", TriggerAt: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
