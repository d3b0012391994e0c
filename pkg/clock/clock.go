/*
Package clock provides the time source used by every timed widget in the tour.

Playback never calls time.AfterFunc directly. It schedules work on a Clock, and
the frontends decide how that clock moves: the TUI advances a Virtual clock on
each frame, the HTTP adapter advances one per widget session from a real ticker,
and tests advance it by hand.
*/
package clock

import (
	"container/heap"
	"sync"
	"time"
)

// Timer is a pending callback scheduled on a Clock.
type Timer interface {
	// Stop cancels the callback. It reports whether the call stopped the timer
	// (false if it already fired or was stopped).
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Virtual is a manually advanced Clock.
// Callbacks only run inside Advance/Drain, on the caller's goroutine, and
// always without the clock's lock held, so they may schedule new timers.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers timerHeap
}

// NewVirtual creates a virtual clock starting at the given instant.
// A zero start uses the Unix epoch so that tests are reproducible.
func NewVirtual(start time.Time) *Virtual {
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}
	return &Virtual{now: start}
}

// Now returns the current virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// AfterFunc schedules f to run once the clock has advanced by d.
// Non-positive durations fire on the next Advance, including Advance(0).
func (v *Virtual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	t := &virtualTimer{
		clock:    v,
		deadline: v.now.Add(d),
		seq:      v.seq,
		fn:       f,
	}
	heap.Push(&v.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose deadline falls
// within the window in deadline order (ties in scheduling order). Timers
// scheduled by callbacks fire too if their deadline is still within the window.
// It returns the number of callbacks run.
func (v *Virtual) Advance(d time.Duration) int {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()
	return v.runUntil(target)
}

// Drain runs timers until none are pending, jumping time forward to each
// deadline. max bounds the number of callbacks (guards against self-rescheduling
// loops); max <= 0 means no bound. It returns the number of callbacks run.
func (v *Virtual) Drain(max int) int {
	fired := 0
	for max <= 0 || fired < max {
		v.mu.Lock()
		if len(v.timers) == 0 {
			v.mu.Unlock()
			return fired
		}
		next := v.timers[0].deadline
		v.mu.Unlock()

		n := v.runUntil(next)
		if n == 0 {
			return fired
		}
		fired += n
	}
	return fired
}

// Pending reports how many timers are scheduled and not yet fired or stopped.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

func (v *Virtual) runUntil(target time.Time) int {
	fired := 0
	for {
		v.mu.Lock()
		if len(v.timers) == 0 || v.timers[0].deadline.After(target) {
			if target.After(v.now) {
				v.now = target
			}
			v.mu.Unlock()
			return fired
		}
		t := heap.Pop(&v.timers).(*virtualTimer)
		t.index = -1
		if t.deadline.After(v.now) {
			v.now = t.deadline
		}
		fn := t.fn
		v.mu.Unlock()

		fn()
		fired++
	}
}

type virtualTimer struct {
	clock    *Virtual
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
}

func (t *virtualTimer) Stop() bool {
	v := t.clock
	v.mu.Lock()
	defer v.mu.Unlock()
	if t.index < 0 {
		return false
	}
	heap.Remove(&v.timers, t.index)
	t.index = -1
	return true
}

type timerHeap []*virtualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*virtualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}
