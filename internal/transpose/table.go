package transpose

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

//go:generate enumer -type=Format -trimprefix=Format -transform=lower -text

// Format selects the transpose output rendering.
type Format int

const (
	// FormatCSV writes plain transposed CSV.
	FormatCSV Format = iota

	// FormatTable renders a human-readable table with grouped digits.
	FormatTable
)

// Write renders the result to w in the given format.
func (res *Result) Write(w io.Writer, format Format) error {
	if format == FormatTable {
		return res.WriteTable(w)
	}

	return res.WriteCSV(w)
}

// WriteTable renders the transposed result as a rounded-border table, with
// nanosecond values comma-grouped for reading.
func (res *Result) WriteTable(w io.Writer) error {
	t := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleRounded),
		})),
		tablewriter.WithPadding(tw.Padding{Left: " ", Right: " "}),
	)

	header := make([]string, 0, len(res.Columns)+1)
	header = append(header, "Size")
	header = append(header, res.Columns...)

	t.Header(header)

	for _, size := range res.Sizes {
		row := make([]string, 0, len(res.Cells[size])+1)
		row = append(row, humanize.Comma(int64(size))) //nolint:gosec // sizes fit int64

		for _, avg := range res.Cells[size] {
			row = append(row, humanize.Comma(int64(avg))+" ns") //nolint:gosec // averages fit int64
		}

		if err := t.Append(row); err != nil {
			return errors.Wrap(err, "append table row")
		}
	}

	return errors.Wrap(t.Render(), "render table")
}
