package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rowsCmd = &cobra.Command{
	Use:   "rows <vcd-file>",
	Short: "List timestamp rows in the VCD file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRows,
}

func runRows(cmd *cobra.Command, args []string) error {
	f, err := openTrace(args[0])
	if err != nil {
		return err
	}

	rows := f.Rows()
	fmt.Fprintf(output, "%-8s %s\n", "ROW", "TIME")
	fmt.Fprintf(output, "%s\n", strings.Repeat("-", 40))
	for i, t := range rows {
		fmt.Fprintf(output, "%-8d %d\n", i, t)
	}

	fmt.Fprintf(output, "\nTotal: %d rows\n", len(rows))
	return nil
}
