package bench_test

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanobench/pkg/bench"
	"github.com/smykla-skalski/nanobench/pkg/logger"
)

// noop is a benchmark function that measures nothing but the harness.
func noop(*bench.State[uint64]) {}

// burn keeps the CPU busy for roughly d of wall time.
func burn(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) { //nolint:revive // busy loop on purpose
	}
}

// fastOpts makes runner tests quick: two repetitions, no duration floor,
// rows captured in buf.
func fastOpts(buf *bytes.Buffer, extra ...bench.Option) []bench.Option {
	opts := []bench.Option{
		bench.WithMinRuns(2),
		bench.WithMinDuration(0),
		bench.WithReporter(bench.NewReporter(buf)),
		bench.WithLogger(logger.NewNoOpLogger()),
	}

	return append(opts, extra...)
}

// rowNames extracts the name column of every data row in buf.
func rowNames(buf *bytes.Buffer) []string {
	var names []string

	for line := range strings.Lines(buf.String()) {
		line = strings.TrimSuffix(line, "\n")
		if line == "" || strings.HasPrefix(line, "Name,") {
			continue
		}

		names = append(names, strings.SplitN(line, ",", 2)[0])
	}

	return names
}

var _ = Describe("Benchmark", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	Describe("Run preconditions", func() {
		It("should fail on an empty benchmark set", func() {
			err := bench.New("empty").Run(fastOpts(buf)...)

			Expect(err).To(MatchError(bench.ErrEmptyBenchmark))
			Expect(buf.String()).To(BeEmpty())
		})
	})

	Describe("range enumeration", func() {
		It("should enumerate (16, 1024, x2) as exactly seven sizes", func() {
			b := bench.New("example").
				WithRange(16, 1024, 2).
				WithBench("f", noop)

			Expect(b.Run(fastOpts(buf)...)).To(Succeed())

			Expect(rowNames(buf)).To(Equal([]string{
				"example/f/16",
				"example/f/32",
				"example/f/64",
				"example/f/128",
				"example/f/256",
				"example/f/512",
				"example/f/1024",
			}))
		})

		It("should honor the individual bound setters", func() {
			b := bench.New("example").
				WithLowerBound(4).
				WithUpperBound(64).
				WithMul(4).
				WithBench("f", noop)

			Expect(b.Run(fastOpts(buf)...)).To(Succeed())

			Expect(rowNames(buf)).To(Equal([]string{
				"example/f/4",
				"example/f/16",
				"example/f/64",
			}))
		})
	})

	Describe("generator composition", func() {
		It("should compose generators left-to-right", func() {
			var got []string

			b := bench.WithGenerator(
				bench.WithGenerator(
					bench.New("compose").WithRange(2, 8, 2),
					func(i uint64) uint64 { return i * 10 },
				),
				func(i uint64) string { return fmt.Sprintf("v%d", i) },
			).WithBench("f", func(s *bench.State[string]) {
				got = append(got, s.Input())
			})

			Expect(b.Run(fastOpts(buf)...)).To(Succeed())

			Expect(got).To(ContainElements("v20", "v40", "v80"))
		})

		It("should invoke the generator chain once per range value", func() {
			var calls int

			b := bench.WithGenerator(
				bench.New("shared").WithRange(16, 1024, 2),
				func(i uint64) uint64 {
					calls++

					return i
				},
			).
				WithBench("f", func(*bench.State[uint64]) {}).
				WithBench("g", func(*bench.State[uint64]) {})

			Expect(b.Run(fastOpts(buf)...)).To(Succeed())

			// Seven range values, shared by both functions and all
			// repetitions.
			Expect(calls).To(Equal(7))
		})

		It("should discard previously registered functions", func() {
			b := bench.WithGenerator(
				bench.New("wiped").WithBench("f", noop),
				func(i uint64) uint64 { return i },
			)

			Expect(b.Run(fastOpts(buf)...)).To(MatchError(bench.ErrEmptyBenchmark))
		})
	})

	Describe("repetition thresholds", func() {
		It("should repeat exactly minRuns times when the duration floor is zero", func() {
			var runs int

			b := bench.New("reps").
				WithRange(1, 1, 2).
				WithBench("f", func(*bench.State[uint64]) { runs++ })

			Expect(b.Run(fastOpts(buf, bench.WithMinRuns(8))...)).To(Succeed())

			Expect(runs).To(Equal(8))
		})

		It("should keep repeating until the duration floor is met", func() {
			var runs int

			b := bench.New("reps").
				WithRange(1, 1, 2).
				WithBench("f", func(s *bench.State[uint64]) {
					runs++
					burn(time.Millisecond)
				})

			opts := fastOpts(buf,
				bench.WithMinRuns(2),
				bench.WithMinDuration(10*time.Millisecond),
			)
			Expect(b.Run(opts...)).To(Succeed())

			Expect(runs).To(BeNumerically(">", 2))
		})

		It("should floor the minimum run count at two", func() {
			var runs int

			b := bench.New("reps").
				WithRange(1, 1, 2).
				WithBench("f", func(*bench.State[uint64]) { runs++ })

			Expect(b.Run(fastOpts(buf, bench.WithMinRuns(0))...)).To(Succeed())

			Expect(runs).To(Equal(2))
		})
	})

	Describe("input cloning", func() {
		It("should hand every repetition an uncontaminated clone", func() {
			const n = 64

			var short int

			b := bench.WithGenerator(
				bench.New("clone").WithRange(n, n, 2),
				func(i uint64) []uint64 { return make([]uint64, i) },
			).
				WithCloner(slices.Clone[[]uint64]).
				WithBench("drain", func(s *bench.State[[]uint64]) {
					vec := s.Input()
					if len(vec) != n {
						short++
					}

					// Destructive consumption of the input.
					for len(vec) > 0 {
						vec = vec[:len(vec)-1]
					}
				})

			Expect(b.Run(fastOpts(buf, bench.WithMinRuns(4))...)).To(Succeed())

			Expect(short).To(BeZero())
		})
	})

	Describe("filtering", func() {
		newSet := func() bench.Benchmark[uint64] {
			return bench.New("example").
				WithRange(1024, 1024, 2).
				WithBench("bm_vector_range", noop)
		}

		It("should retain rows matching the pattern", func() {
			f := bench.NewFilter("bm_vector_range", logger.NewNoOpLogger())

			Expect(newSet().Run(fastOpts(buf, bench.WithFilter(f))...)).To(Succeed())

			Expect(rowNames(buf)).To(Equal([]string{"example/bm_vector_range/1024"}))
		})

		It("should suppress all output, header included, when nothing matches", func() {
			f := bench.NewFilter("nonexistent", logger.NewNoOpLogger())

			Expect(newSet().Run(fastOpts(buf, bench.WithFilter(f))...)).To(Succeed())

			Expect(buf.String()).To(BeEmpty())
		})
	})

	Describe("CSV output", func() {
		It("should emit the header exactly once across multiple sets", func() {
			reporter := bench.NewReporter(buf)
			opts := []bench.Option{
				bench.WithMinRuns(2),
				bench.WithMinDuration(0),
				bench.WithReporter(reporter),
				bench.WithLogger(logger.NewNoOpLogger()),
			}

			first := bench.New("first").WithRange(1, 1, 2).WithBench("f", noop)
			second := bench.New("second").WithRange(1, 1, 2).WithBench("f", noop)

			Expect(first.Run(opts...)).To(Succeed())
			Expect(second.Run(opts...)).To(Succeed())

			Expect(strings.Count(buf.String(), "Name,Time (ns)")).To(Equal(1))
			Expect(rowNames(buf)).To(Equal([]string{"first/f/1", "second/f/1"}))
		})
	})

	Describe("benchmark function failures", func() {
		It("should propagate panics instead of retrying", func() {
			b := bench.New("boom").
				WithRange(1, 1, 2).
				WithBench("f", func(*bench.State[uint64]) { panic("kaboom") })

			Expect(func() { _ = b.Run(fastOpts(buf)...) }).To(PanicWith("kaboom"))
		})
	})
})
