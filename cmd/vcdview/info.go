package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skdltmxn/vcd-go/vcd"
)

var infoCmd = &cobra.Command{
	Use:   "info <vcd-file>...",
	Short: "Display VCD file information",
	Long: `Display general information about one or more VCD files including
header directives, signal and timestamp counts, and skipped lines.

Multiple files are parsed in parallel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	files := make([]*vcd.File, len(args))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		g.Go(func() error {
			f, err := openTrace(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(output)
		}
		printInfo(f)
	}
	return nil
}

func printInfo(f *vcd.File) {
	hdr := f.Header()
	stats := f.Stats()

	fmt.Fprintf(output, "VCD File: %s\n", f.Path())
	for _, key := range []string{"date", "version", "timescale"} {
		if v, ok := hdr[key]; ok {
			fmt.Fprintf(output, "%s: %s\n", key, v)
		}
	}
	fmt.Fprintf(output, "Signals: %d\n", stats.Signals)
	fmt.Fprintf(output, "Timestamps: %d\n", stats.Timestamps)
	fmt.Fprintf(output, "Value Changes: %d\n", stats.Changes)
	fmt.Fprintf(output, "Skipped Lines: %d\n", stats.Warnings)

	rows := f.Rows()
	if len(rows) > 0 {
		fmt.Fprintf(output, "Time Range: %d - %d\n", rows[0], rows[len(rows)-1])
	}
	fmt.Fprintf(output, "Parse Time: %s\n", stats.Duration)
}
