package palette

// Deferred is work scheduled to run after the current synchronous update.
type Deferred func() []Effect

// Scheduler runs deferred work once, after the caller's current update.
type Scheduler interface {
	Schedule(fn Deferred)
}

// QueueScheduler holds deferred work until Flush. Hosts call Flush on the
// next frame; tests call it directly.
type QueueScheduler struct {
	pending []Deferred
}

func (q *QueueScheduler) Schedule(fn Deferred) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Pending reports how many callbacks are waiting.
func (q *QueueScheduler) Pending() int { return len(q.pending) }

// Flush runs every queued callback exactly once and returns their effects.
// Callbacks scheduled while flushing run on the following Flush.
func (q *QueueScheduler) Flush() []Effect {
	if len(q.pending) == 0 {
		return nil
	}
	fns := q.pending
	q.pending = nil
	var out []Effect
	for _, fn := range fns {
		out = append(out, fn()...)
	}
	return out
}
