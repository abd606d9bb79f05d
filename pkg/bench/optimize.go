package bench

import "sync/atomic"

// sink receives values passed to DoNotOptimize. A store to a package-level
// variable from a noinline function cannot be proven dead, which keeps the
// computation that produced the value alive.
//
//nolint:gochecknoglobals // the escape target must be package-level
var sink any

// clobberSeq backs Clobber's atomic read-modify-write.
//
//nolint:gochecknoglobals // see sink
var clobberSeq atomic.Uint64

// DoNotOptimize consumes a value without allowing the compiler to prove it
// unused. Benchmark functions use it to keep otherwise-dead computations in
// the measured code path:
//
//	bench.DoNotOptimize(vec[len(vec)-1])
//
// This is the Go rendition of the classic asm-based barrier; Go has no
// volatile inline assembly, so the escape through a noinline store is
// best-effort.
//
//go:noinline
func DoNotOptimize[T any](v T) {
	sink = v
}

// Clobber forces prior memory writes to be considered observable, standing
// in for a full asm memory barrier. An atomic read-modify-write orders the
// surrounding memory operations on all supported architectures.
func Clobber() {
	clobberSeq.Add(1)
}
