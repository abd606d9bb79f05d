// Package bench implements the measurement engine: a builder-style
// benchmark set that runs user functions across an exponential range of
// input sizes, repeating each configuration until a stability threshold is
// met, and reports name/average-time CSV rows.
//
//	b := bench.New("example").
//		WithRange(1<<10, 1<<20, 4).
//		WithBench("bm_vector_range", bmVectorRange)
//
//	if err := b.Run(); err != nil {
//		...
//	}
package bench

import (
	"fmt"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hako/durafmt"
)

// Default range bounds, matching the builder's zero configuration.
const (
	DefaultLowerBound = 1
	DefaultUpperBound = 1 << 20
	DefaultMul        = 2
)

// ErrEmptyBenchmark is returned by Run when no benchmark functions are
// registered.
var ErrEmptyBenchmark = errors.New("cannot run an empty benchmark set")

// Func is a benchmark function. It receives the per-repetition State and
// may call Pause/Resume/Input any number of times, obeying the
// paused/running state machine.
type Func[T any] func(*State[T])

// namedFunc pairs a benchmark function with its reported name.
type namedFunc[T any] struct {
	name string
	fn   Func[T]
}

// Benchmark is an immutable benchmark-set configuration: a name, a numeric
// range, a generator chain producing T, and the registered benchmark
// functions over T. Every builder method returns an updated copy, so
// configurations can be forked and partially shared.
type Benchmark[T any] struct {
	name      string
	fns       []namedFunc[T]
	lower     uint64
	upper     uint64
	mul       uint64
	generator func(uint64) T
	cloner    func(T) T
}

// New creates a benchmark set with the given name, the default range
// (1, 1<<20, x2) and the identity generator, so benchmark functions receive
// the raw range value.
func New(name string) Benchmark[uint64] {
	return Benchmark[uint64]{
		name:      name,
		lower:     DefaultLowerBound,
		upper:     DefaultUpperBound,
		mul:       DefaultMul,
		generator: func(i uint64) uint64 { return i },
		cloner:    func(v uint64) uint64 { return v },
	}
}

// WithLowerBound sets the inclusive lower bound of the range.
func (b Benchmark[T]) WithLowerBound(lb uint64) Benchmark[T] {
	b.lower = lb

	return b
}

// WithUpperBound sets the inclusive upper bound of the range.
func (b Benchmark[T]) WithUpperBound(ub uint64) Benchmark[T] {
	b.upper = ub

	return b
}

// WithMul sets the range multiplier. The range is enumerated as
// i = lower; i <= upper; i *= mul. A multiplier of 1 or less never
// terminates, so mul must be greater than 1.
func (b Benchmark[T]) WithMul(mul uint64) Benchmark[T] {
	b.mul = mul

	return b
}

// WithRange sets the whole range at once, see the individual setters.
func (b Benchmark[T]) WithRange(lb, ub, mul uint64) Benchmark[T] {
	b.lower = lb
	b.upper = ub
	b.mul = mul

	return b
}

// WithCloner sets the function used to clone the generator output for each
// repetition. The default is a shallow copy, which is correct for value
// types; benchmarks that destructively consume reference-typed inputs
// (slices, maps) must supply a deep clone or repetitions will contaminate
// each other.
func (b Benchmark[T]) WithCloner(fn func(T) T) Benchmark[T] {
	b.cloner = fn

	return b
}

// WithBench registers a benchmark function under the given name. At least
// one function must be registered before Run.
func (b Benchmark[T]) WithBench(name string, fn Func[T]) Benchmark[T] {
	b.fns = append(slices.Clip(b.fns), namedFunc[T]{name: name, fn: fn})

	return b
}

// WithGenerator appends gen to the benchmark's generator chain, deriving
// inputs of type U from the previous chain's T output. Composition is
// left-to-right in registration order.
//
// Registering a generator changes the input type of the set, so any
// previously registered benchmark functions are discarded and the cloner is
// reset to a shallow copy: call WithGenerator before WithBench and
// WithCloner. This is a top-level function because Go methods cannot
// introduce new type parameters.
func WithGenerator[T, U any](b Benchmark[T], gen func(T) U) Benchmark[U] {
	prev := b.generator

	return Benchmark[U]{
		name:      b.name,
		lower:     b.lower,
		upper:     b.upper,
		mul:       b.mul,
		generator: func(i uint64) U { return gen(prev(i)) },
		cloner:    func(v U) U { return v },
	}
}

// Run executes the benchmark set and emits one CSV row per configuration
// that passes the filter.
//
// For each range value the generator chain runs once; the result is shared
// by all functions in the set and cloned for every repetition, so a
// benchmark that drains its input cannot contaminate the next repetition.
// The clone happens before the State (and its clock) is created, keeping
// the clone cost out of the measured interval.
//
// Each configuration repeats until both stability thresholds are met: at
// least the minimum repetition count and at least the minimum accumulated
// measured time. These are lower bounds only; one pathologically slow
// repetition can push the total far beyond the duration threshold.
//
// A panic inside a benchmark function propagates: repetitions are not
// isolated, and masking a failure by retrying would corrupt timing results.
func (b Benchmark[T]) Run(opts ...Option) error {
	if len(b.fns) == 0 {
		return errors.Wrapf(ErrEmptyBenchmark, "set %q", b.name)
	}

	s := newRunSettings(opts...)
	log := s.log.With("set", b.name)
	started := time.Now()

	for i := b.lower; i <= b.upper; i *= b.mul {
		input := b.generator(i)

		for _, nf := range b.fns {
			name := fmt.Sprintf("%s/%s/%d", b.name, nf.name, i)
			if !s.filter.Match(name) {
				log.Debug("configuration filtered out", "name", name)

				continue
			}

			var runs, total uint64
			for runs < s.minRuns || total < s.minDuration {
				state := NewState(b.cloner(input))
				nf.fn(state)

				total += state.finish()
				runs++
			}

			avg := total / runs
			if err := s.reporter.Row(name, avg); err != nil {
				return errors.Wrap(err, "emit result row")
			}

			log.Debug("configuration measured",
				"name", name,
				"runs", runs,
				"avg_ns", avg,
			)
		}
	}

	log.Info("benchmark set finished",
		"elapsed", durafmt.Parse(time.Since(started).Round(time.Millisecond)).String(),
	)

	return nil
}
