package bench_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanobench/pkg/bench"
)

var _ = Describe("State", func() {
	Describe("Input", func() {
		It("should return the original input on the first call", func() {
			state := bench.NewState([]uint64{1, 2, 3})

			Expect(state.Input()).To(Equal([]uint64{1, 2, 3}))
		})

		It("should return the zero value on a second call", func() {
			state := bench.NewState([]uint64{1, 2, 3})

			state.Input()

			Expect(state.Input()).To(BeNil())
		})

		It("should leave the clock running afterwards", func() {
			state := bench.NewState(uint64(42))
			state.Input()

			// A running clock accepts a Pause; a paused one would panic.
			Expect(state.Pause).NotTo(Panic())
		})

		It("should panic when called while paused", func() {
			state := bench.NewState(uint64(42))
			state.Pause()

			Expect(func() { state.Input() }).To(Panic())
		})
	})

	Describe("Pause and Resume", func() {
		It("should delegate misuse to the clock state machine", func() {
			state := bench.NewState(uint64(1))
			state.Pause()

			Expect(state.Pause).To(PanicWith(MatchError(ContainSubstring("already paused"))))
		})

		It("should panic when resuming a running state", func() {
			state := bench.NewState(uint64(1))

			Expect(state.Resume).To(PanicWith(MatchError(ContainSubstring("already running"))))
		})
	})
})
