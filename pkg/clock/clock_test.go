package clock_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/nanobench/pkg/clock"
)

// spin burns CPU for roughly d of wall time. Unlike time.Sleep it keeps the
// process on-CPU, so the work is visible to a CPU-time clock.
func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) { //nolint:revive // busy loop is the point
	}
}

var _ = Describe("Clock", func() {
	Describe("Stop", func() {
		It("should return a near-zero total for an immediately stopped clock", func() {
			c := clock.New()

			Expect(c.Stop()).To(BeNumerically("<", uint64(50*time.Millisecond)))
		})

		It("should count time spent running", func() {
			c := clock.New()
			spin(30 * time.Millisecond)

			// CPU time and wall time can diverge under contention, so the
			// lower bound is deliberately loose.
			Expect(c.Stop()).To(BeNumerically(">", uint64(time.Millisecond)))
		})

		It("should exclude time spent paused", func() {
			c := clock.New()
			c.Pause()
			spin(50 * time.Millisecond)
			c.Resume()

			Expect(c.Stop()).To(BeNumerically("<", uint64(25*time.Millisecond)))
		})

		It("should accumulate across multiple run segments", func() {
			c := clock.New()
			spin(10 * time.Millisecond)
			c.Pause()
			spin(50 * time.Millisecond)
			c.Resume()
			spin(10 * time.Millisecond)

			total := c.Stop()
			Expect(total).To(BeNumerically(">", uint64(time.Millisecond)))
			Expect(total).To(BeNumerically("<", uint64(45*time.Millisecond)))
		})
	})

	Describe("state machine misuse", func() {
		It("should panic when pausing a paused clock", func() {
			c := clock.New()
			c.Pause()

			Expect(c.Pause).To(PanicWith(MatchError(ContainSubstring("already paused"))))
		})

		It("should panic when resuming a running clock", func() {
			c := clock.New()

			Expect(c.Resume).To(PanicWith(MatchError(ContainSubstring("already running"))))
		})

		It("should panic when stopping a paused clock", func() {
			c := clock.New()
			c.Pause()

			Expect(func() { c.Stop() }).To(PanicWith(MatchError(ContainSubstring("paused"))))
		})

		It("should panic on any use after Stop", func() {
			c := clock.New()
			c.Stop()

			Expect(c.Pause).To(PanicWith(MatchError(ContainSubstring("after stop"))))
			Expect(c.Resume).To(PanicWith(MatchError(ContainSubstring("after stop"))))
			Expect(func() { c.Stop() }).To(PanicWith(MatchError(ContainSubstring("after stop"))))
		})
	})
})
