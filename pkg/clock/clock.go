// Package clock provides the monotonic CPU-time clock that backs every
// benchmark measurement. A Clock accumulates elapsed nanoseconds across
// pause/resume cycles and is consumed by Stop.
package clock

import "github.com/cockroachdb/errors"

// Clock accumulates CPU time across run segments. It is created running;
// exactly one of running/paused holds at any instant, and elapsed time only
// advances while running.
//
// Misuse of the state machine (pausing a paused clock, resuming a running
// one, stopping a paused or consumed one) indicates a broken caller contract
// and panics with an assertion failure. The harness never recovers from
// these: a benchmark that miscounts its own pauses produces garbage numbers.
type Clock struct {
	paused  bool
	stopped bool
	start   uint64
	elapsed uint64
}

// New returns a running Clock whose first segment starts now.
func New() *Clock {
	return &Clock{start: now()}
}

// Pause closes the current run segment and adds it to the accumulated
// elapsed time. Panics if the clock is already paused or consumed.
func (c *Clock) Pause() {
	t := now()

	c.checkLive()

	if c.paused {
		panic(errors.AssertionFailedf("pause called on an already paused clock"))
	}

	c.elapsed += t - c.start
	c.paused = true
}

// Resume opens a new run segment. Panics if the clock is running or consumed.
func (c *Clock) Resume() {
	c.checkLive()

	if !c.paused {
		panic(errors.AssertionFailedf("resume called on an already running clock"))
	}

	c.paused = false
	c.start = now()
}

// Stop consumes the clock and returns the total elapsed nanoseconds,
// including the still-open final segment. Panics if the clock is paused or
// already consumed.
func (c *Clock) Stop() uint64 {
	t := now()

	c.checkLive()

	if c.paused {
		panic(errors.AssertionFailedf("stop called on a paused clock"))
	}

	c.stopped = true

	return c.elapsed + t - c.start
}

func (c *Clock) checkLive() {
	if c.stopped {
		panic(errors.AssertionFailedf("clock used after stop"))
	}
}
