package bench

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/smykla-skalski/nanobench/pkg/logger"
)

// csvHeader is the column header preceding the first result row.
const csvHeader = "Name,Time (ns)"

// Reporter emits benchmark results as CSV rows. The header is written
// lazily, exactly once per Reporter, before the first data row, so a run
// whose rows are all filtered out produces no output at all.
//
// The package-level default Reporter is bound to stdout and shared by every
// Run call that does not override it, which gives the process-wide
// "header printed once" guarantee across multiple benchmark sets.
type Reporter struct {
	w          io.Writer
	headerOnce sync.Once
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// NewFileReporter creates a Reporter writing to the file at path. If the
// file cannot be created, the error is logged and the Reporter falls back
// to stdout so results are not lost.
func NewFileReporter(path string, log logger.Logger) *Reporter {
	f, err := os.Create(path) //nolint:gosec // output path is chosen by the user
	if err != nil {
		log.Error("cannot open output file, writing results to stdout",
			"path", path,
			"error", err,
		)

		return NewReporter(os.Stdout)
	}

	return NewReporter(f)
}

// Row writes one result row, emitting the header first if this is the
// Reporter's first row.
func (r *Reporter) Row(name string, avgNs uint64) error {
	var headerErr error

	r.headerOnce.Do(func() {
		_, headerErr = fmt.Fprintln(r.w, csvHeader)
	})

	if headerErr != nil {
		return errors.Wrap(headerErr, "write csv header")
	}

	if _, err := fmt.Fprintf(r.w, "%s,%d\n", name, avgNs); err != nil {
		return errors.Wrap(err, "write csv row")
	}

	return nil
}

// Close closes the underlying writer when it owns one. Closing the default
// stdout Reporter is a no-op.
func (r *Reporter) Close() error {
	if r.w == os.Stdout {
		return nil
	}

	if c, ok := r.w.(io.Closer); ok {
		return errors.Wrap(c.Close(), "close report output")
	}

	return nil
}

// defaultReporter backs every Run call without an explicit WithReporter.
var defaultReporter = NewReporter(os.Stdout)

// DefaultReporter returns the shared process-wide stdout Reporter.
func DefaultReporter() *Reporter {
	return defaultReporter
}
