package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var valueCmd = &cobra.Command{
	Use:   "value <vcd-file> <signal> <time>",
	Short: "Look up a signal value at a point in time",
	Long: `Look up the value of one signal from its last change at or before the
given simulation time.

Example:
  vcdview value trace.vcd top.cpu.pc 1200`,
	Args: cobra.ExactArgs(3),
	RunE: runValue,
}

func runValue(cmd *cobra.Command, args []string) error {
	at, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid time: %s", args[2])
	}

	f, err := openTrace(args[0])
	if err != nil {
		return err
	}

	v, err := f.ValueAt(args[1], at)
	if err != nil {
		return err
	}
	if v == "" {
		fmt.Fprintf(output, "%s has no value at or before %d\n", args[1], at)
		return nil
	}
	fmt.Fprintf(output, "%s @ %d = %s\n", args[1], at, v)
	return nil
}
