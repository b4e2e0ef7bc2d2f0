package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/vcd-go/vcd"
)

var rowCmd = &cobra.Command{
	Use:   "row <vcd-file> <index>",
	Short: "Show every signal value at a row",
	Long: `Resolve every signal at the timestamp of the given row. Each signal
shows the value of its last change at or before that time; signals that
have not changed yet are shown as "-".`,
	Args: cobra.ExactArgs(2),
	RunE: runRow,
}

func runRow(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid row index: %s", args[1])
	}

	f, err := openTrace(args[0])
	if err != nil {
		return err
	}

	snap := f.FetchRow(index)
	if len(snap) == 0 {
		fmt.Fprintf(output, "No row %d (file has %d rows)\n", index, len(f.Rows()))
		return nil
	}

	fmt.Fprintf(output, "Row %d @ %d\n\n", index, f.Rows()[index])
	printSnapshot(f.Columns(), snap)
	return nil
}

func printSnapshot(columns []string, snap vcd.Snapshot) {
	fmt.Fprintf(output, "%-12s %s\n", "VALUE", "SIGNAL")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 60))
	for _, name := range columns {
		v := snap[name]
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(output, "%-12s %s\n", v, name)
	}
}
