package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/nanobench/internal/transpose"
	"github.com/smykla-skalski/nanobench/pkg/logger"
)

// Transpose command flags.
var (
	transposeOutput string
	transposeFormat string
)

var transposeCmd = &cobra.Command{
	Use:   "transpose [file]",
	Short: "Pivot result CSV into one row per size",
	Long: `Pivot harness result CSV into one row per size.

Reads "Name,Time (ns)" rows with set/function/size names from the given
file (or stdin) and emits one row per size with one column per benchmark,
which is the shape spreadsheets and plotting tools want.

Examples:
  ./bench.test | nanobench transpose                 # Pipe a benchmark run
  nanobench transpose results.csv                    # Read from a file
  nanobench transpose results.csv --format table     # Human-readable table
  nanobench transpose results.csv -o transposed.csv  # Write to a file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranspose,
}

func init() {
	rootCmd.AddCommand(transposeCmd)
	transposeCmd.Flags().StringVarP(
		&transposeOutput,
		"output",
		"o",
		"",
		"Write to this file instead of stdout",
	)
	transposeCmd.Flags().StringVar(
		&transposeFormat,
		"format",
		transpose.FormatCSV.String(),
		"Output format (csv, table)",
	)
}

func runTranspose(_ *cobra.Command, args []string) error {
	log := logger.NewStderrLogger(false, false)

	format, err := transpose.FormatString(transposeFormat)
	if err != nil {
		return errors.Wrapf(err, "unknown format %q", transposeFormat)
	}

	in, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	res, err := transpose.Parse(in)
	if err != nil {
		return err
	}

	out, closeOut := openOutput(log)
	defer closeOut()

	return res.Write(out, format)
}

// openInput returns the report source: the file named in args, or stdin.
func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(args[0]) //nolint:gosec // user-provided CLI argument
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open report %s", args[0])
	}

	return f, func() { _ = f.Close() }, nil
}

// openOutput returns the destination writer. When the requested output file
// cannot be created the results go to stdout instead, with a diagnostic:
// the reshaped report should not be lost to a typoed path.
func openOutput(log logger.Logger) (io.Writer, func()) {
	if transposeOutput == "" {
		return os.Stdout, func() {}
	}

	f, err := os.Create(transposeOutput) //nolint:gosec // user-provided CLI argument
	if err != nil {
		log.Error("cannot open output file, writing to stdout",
			"path", transposeOutput,
			"error", err,
		)

		return os.Stdout, func() {}
	}

	return f, func() { _ = f.Close() }
}
