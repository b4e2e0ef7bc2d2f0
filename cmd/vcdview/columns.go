package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	columnsVerbose bool
)

var columnsCmd = &cobra.Command{
	Use:   "columns <vcd-file>",
	Short: "List signals in the VCD file",
	Long:  `List every fully qualified signal name, in declaration order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runColumns,
}

func init() {
	columnsCmd.Flags().BoolVarP(&columnsVerbose, "long", "l", false, "show type, width and wire code")
}

func runColumns(cmd *cobra.Command, args []string) error {
	f, err := openTrace(args[0])
	if err != nil {
		return err
	}

	signals := f.Signals()
	if columnsVerbose {
		fmt.Fprintf(output, "%-8s %-6s %-8s %-10s %s\n", "TYPE", "WIDTH", "CODE", "RANGE", "NAME")
		fmt.Fprintf(output, "%s\n", strings.Repeat("-", 80))
		for _, s := range signals {
			rng := s.Range
			if rng == "" {
				rng = "-"
			}
			fmt.Fprintf(output, "%-8s %-6d %-8s %-10s %s\n", s.Type, s.Width, s.Code, rng, s.Name)
		}
	} else {
		for _, s := range signals {
			fmt.Fprintln(output, s.Name)
		}
	}

	fmt.Fprintf(output, "\nTotal: %d signals\n", len(signals))
	return nil
}
