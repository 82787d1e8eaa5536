package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

// RetryDelay is how long an undroppable event waits before another delivery
// attempt when C is full.
const RetryDelay = 10 * time.Millisecond

// Event is a deadline delivered on C once TriggerAt passes. Group lets a
// caller cancel a related set of pending events in one call; Gen and Key are
// opaque to the engine and let the receiver discard stale deliveries.
//
// A Droppable event is discarded when C is full. Any other event is held and
// retried until the consumer catches up or its group is cancelled.
type Event struct {
	ID        string
	Group     string
	Kind      string
	Key       string
	Gen       uint64
	TriggerAt time.Time
	Droppable bool
}

// pending orders events by trigger time, then by scheduling order.
type pending struct {
	ev  Event
	seq uint64
}

type timeline []pending

func (q timeline) Len() int { return len(q) }

func (q timeline) Less(i, j int) bool {
	if q[i].ev.TriggerAt.Equal(q[j].ev.TriggerAt) {
		return q[i].seq < q[j].seq
	}
	return q[i].ev.TriggerAt.Before(q[j].ev.TriggerAt)
}

func (q timeline) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timeline) Push(x any) { *q = append(*q, x.(pending)) }

func (q *timeline) Pop() any {
	old := *q
	last := old[len(old)-1]
	old[len(old)-1] = pending{}
	*q = old[:len(old)-1]
	return last
}

type Engine struct {
	mu      sync.Mutex
	queue   timeline
	seq     uint64
	started bool
	stopped bool

	out    chan Event
	wakeup chan struct{}
	stopCh chan struct{}
	doneCh chan struct{}

	dropped  atomic.Uint64
	deferred atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	return &Engine{
		out:    make(chan Event, max(bufferSize, 1)),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

// Stop ends the loop and closes C. Pending events are discarded.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(ev Event) error {
	if ev.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	e.push(ev)
	e.poke()
	return nil
}

// CancelGroup removes every pending event of the group, including events
// waiting for a retry, and reports how many were removed. Events already
// delivered to C are not recalled.
func (e *Engine) CancelGroup(group string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.queue)
	kept := e.queue[:0]
	for _, p := range e.queue {
		if p.ev.Group != group {
			kept = append(kept, p)
		}
	}
	clear(e.queue[len(kept):n])
	e.queue = kept
	removed := n - len(kept)
	if removed > 0 {
		heap.Init(&e.queue)
		e.poke()
	}
	return removed
}

// Pending reports the number of events not yet delivered.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Dropped counts droppable events discarded because C was full.
func (e *Engine) Dropped() uint64 { return e.dropped.Load() }

// Deferred counts delivery attempts postponed because C was full.
func (e *Engine) Deferred() uint64 { return e.deferred.Load() }

// push requires e.mu.
func (e *Engine) push(ev Event) {
	e.seq++
	heap.Push(&e.queue, pending{ev: ev, seq: e.seq})
}

func (e *Engine) poke() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		wait, ok := e.untilNext(time.Now())
		if ok {
			timer.Reset(wait)
		} else {
			timer.Stop()
		}
		select {
		case <-timer.C:
			e.flush(time.Now())
		case <-e.wakeup:
		case <-e.stopCh:
			return
		}
	}
}

func (e *Engine) untilNext(now time.Time) (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return 0, false
	}
	return max(e.queue[0].ev.TriggerAt.Sub(now), 0), true
}

// flush hands every due event to C. When C is full, droppable events are
// counted and discarded and the rest go back on the timeline RetryDelay later.
func (e *Engine) flush(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var retry []Event
	for len(e.queue) > 0 && !e.queue[0].ev.TriggerAt.After(now) {
		ev := heap.Pop(&e.queue).(pending).ev
		select {
		case e.out <- ev:
			continue
		default:
		}
		if ev.Droppable {
			e.dropped.Add(1)
			continue
		}
		e.deferred.Add(1)
		ev.TriggerAt = now.Add(RetryDelay)
		retry = append(retry, ev)
	}
	for _, ev := range retry {
		e.push(ev)
	}
}
