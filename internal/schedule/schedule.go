// Package schedule runs delayed continuations on the simulation clock. Tasks never run on
// their own goroutine: they fire inside Advance, on the caller's thread, in due order.
package schedule

import "container/heap"

// Task is a continuation resumed once its delay has elapsed.
type Task func()

type entry struct {
	due  float64
	seq  uint64
	task Task
}

type entries []entry

func (e entries) Len() int { return len(e) }
func (e entries) Less(i, j int) bool {
	if e[i].due != e[j].due {
		return e[i].due < e[j].due
	}
	return e[i].seq < e[j].seq
}
func (e entries) Swap(i, j int) { e[i], e[j] = e[j], e[i] }
func (e *entries) Push(x any)   { *e = append(*e, x.(entry)) }
func (e *entries) Pop() any {
	old := *e
	n := len(old)
	item := old[n-1]
	*e = old[:n-1]
	return item
}

// Scheduler is a per-side clock advanced once per simulation tick.
type Scheduler struct {
	now     float64
	seq     uint64
	pending entries
	// tasks added while Advance is draining the heap
	deferred []entry
	running  bool
}

// New returns a scheduler with its clock at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current clock in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules task to resume delay seconds from now. Negative delays are treated as
// zero. A task queued from inside another task never runs in the same Advance call.
func (s *Scheduler) After(delay float64, task Task) {
	if task == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	s.seq++
	e := entry{due: s.now + delay, seq: s.seq, task: task}
	if s.running {
		s.deferred = append(s.deferred, e)
		return
	}
	heap.Push(&s.pending, e)
}

// Advance moves the clock forward by dt and resumes every task that is due.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}

	s.running = true
	for s.pending.Len() > 0 && s.pending[0].due <= s.now {
		e := heap.Pop(&s.pending).(entry)
		e.task()
	}
	s.running = false

	for _, e := range s.deferred {
		heap.Push(&s.pending, e)
	}
	s.deferred = s.deferred[:0]
}

// Pending returns the number of tasks waiting to resume.
func (s *Scheduler) Pending() int {
	return s.pending.Len() + len(s.deferred)
}

// Clear drops every pending task.
func (s *Scheduler) Clear() {
	s.pending = s.pending[:0]
	s.deferred = s.deferred[:0]
}
