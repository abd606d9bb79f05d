// Package transpose reshapes harness result CSV. The runner emits one row
// per "set/function/size" configuration:
//
//	Name,Time (ns)
//	example/bm_vector_range/1024,102541
//	example/bm_vector_gen/1024,102316
//
// which this package pivots into one row per size with one column per
// benchmark, the shape spreadsheet tooling wants:
//
//	Size,example/bm_vector_range,example/bm_vector_gen
//	1024,102541,102316
package transpose

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Result is a transposed benchmark report. Columns keep the order in which
// benchmarks first appeared in the input; sizes are sorted ascending.
type Result struct {
	// Columns are the "set/function" benchmark names.
	Columns []string

	// Sizes are the distinct range values, ascending.
	Sizes []uint64

	// Cells maps a size to its measured averages, in column order. Rows
	// may be ragged when the input did not cover every benchmark at every
	// size.
	Cells map[uint64][]uint64
}

// Parse reads harness CSV from r and builds the transposed result. Lines
// that do not look like result rows (including the header) are skipped, so
// raw runner output can be piped in unmodified.
func Parse(r io.Reader) (*Result, error) {
	res := &Result{Cells: make(map[uint64][]uint64)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name, size, avg, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}

		if !slices.Contains(res.Columns, name) {
			res.Columns = append(res.Columns, name)
		}

		if _, seen := res.Cells[size]; !seen {
			res.Sizes = append(res.Sizes, size)
		}

		res.Cells[size] = append(res.Cells[size], avg)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read benchmark csv")
	}

	slices.Sort(res.Sizes)

	return res, nil
}

// parseLine splits "set/fn/size,avg" into its parts. ok is false for
// anything else.
func parseLine(line string) (name string, size, avg uint64, ok bool) {
	cells := strings.Split(line, ",")
	if len(cells) != 2 {
		return "", 0, 0, false
	}

	parts := strings.Split(cells[0], "/")
	if len(parts) != 3 {
		return "", 0, 0, false
	}

	size, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return "", 0, 0, false
	}

	avg, err = strconv.ParseUint(strings.TrimSpace(cells[1]), 10, 64)
	if err != nil {
		return "", 0, 0, false
	}

	return parts[0] + "/" + parts[1], size, avg, true
}

// WriteCSV writes the transposed result as CSV to w.
func (res *Result) WriteCSV(w io.Writer) error {
	var b strings.Builder

	b.WriteString("Size")

	for _, col := range res.Columns {
		b.WriteString(",")
		b.WriteString(col)
	}

	b.WriteString("\n")

	for _, size := range res.Sizes {
		b.WriteString(strconv.FormatUint(size, 10))

		for _, avg := range res.Cells[size] {
			b.WriteString(",")
			b.WriteString(strconv.FormatUint(avg, 10))
		}

		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write transposed csv")
	}

	return nil
}
