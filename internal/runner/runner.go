// Package runner provides the engine's deferred-action queue.
// Actions queued during a tick run at a single point of the next one, so
// nothing mutates the live entity list while it is being iterated.
package runner

// Runner is a FIFO queue of deferred actions.
type Runner struct {
	runs []func()
}

// New creates an empty runner.
func New() *Runner {
	return &Runner{}
}

// Add queues fn to run on the next Update. Nil actions are ignored.
func (r *Runner) Add(fn func()) {
	if fn == nil {
		return
	}
	r.runs = append(r.runs, fn)
}

// Update runs queued actions in order until the queue is empty.
// Actions queued by a running action also run during this call.
func (r *Runner) Update() {
	for len(r.runs) > 0 {
		fn := r.runs[0]
		r.runs[0] = nil
		r.runs = r.runs[1:]
		fn()
	}
	r.runs = nil
}

// Len returns the number of pending actions.
func (r *Runner) Len() int {
	return len(r.runs)
}
