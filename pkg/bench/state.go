package bench

import "github.com/smykla-skalski/nanobench/pkg/clock"

// State is the per-repetition benchmark state. It owns the measurement clock
// and exactly one input value, and is handed to the benchmark function for
// one repetition. A State is never reused across repetitions.
//
// T is uint64 unless a generator chain was registered, in which case it is
// the output type of the last generator.
type State[T any] struct {
	clk   *clock.Clock
	input T
}

// NewState creates a State with a running clock and the given input. The
// runner constructs one per repetition; it is exported so benchmark
// functions can be unit-tested in isolation.
func NewState[T any](input T) *State[T] {
	return &State[T]{
		clk:   clock.New(),
		input: input,
	}
}

// Pause pauses the measurement clock, excluding subsequent work from the
// measured interval. Useful for setup and teardown inside a benchmark
// function. Panics if the clock is already paused.
func (s *State[T]) Pause() {
	s.clk.Pause()
}

// Resume resumes the measurement clock after a Pause. Panics if the clock
// is already running.
func (s *State[T]) Resume() {
	s.clk.Resume()
}

// Input extracts the input value. The clock is paused for the duration of
// the extraction, so retrieving the input never counts toward measured time.
//
// The stored input is replaced by T's zero value, so a second call returns
// the zero value rather than the original. Panics if called while paused:
// the implicit pause cannot stack.
func (s *State[T]) Input() T {
	s.clk.Pause()

	var zero T

	input := s.input
	s.input = zero

	s.clk.Resume()

	return input
}

// finish stops the clock and returns the elapsed nanoseconds for this
// repetition. Called by the runner; panics if the clock is paused.
func (s *State[T]) finish() uint64 {
	return s.clk.Stop()
}
