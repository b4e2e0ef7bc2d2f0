package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/vcd-go/vcd"
)

var (
	dumpFormat string
)

var dumpCmd = &cobra.Command{
	Use:   "dump <vcd-file>",
	Short: "Dump all VCD information",
	Long: `Dump all information from a VCD file in structured format.

Supported formats:
  - text: Human-readable text (default)
  - json: JSON format`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
}

type VCDDump struct {
	File     string            `json:"file"`
	Header   map[string]string `json:"header"`
	Stats    StatsDump         `json:"stats"`
	Signals  []SignalDump      `json:"signals"`
	Rows     []RowDump         `json:"rows"`
	Warnings []WarningDump     `json:"warnings,omitempty"`
}

type StatsDump struct {
	Signals    int `json:"signals"`
	Timestamps int `json:"timestamps"`
	Changes    int `json:"changes"`
	Warnings   int `json:"warnings"`
}

type SignalDump struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Type  string `json:"type"`
	Width int    `json:"width"`
	Range string `json:"range,omitempty"`
}

type RowDump struct {
	Index  int               `json:"index"`
	Time   int64             `json:"time"`
	Values map[string]string `json:"values"`
}

type WarningDump struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

func runDump(cmd *cobra.Command, args []string) error {
	vcdPath := args[0]

	f, err := openTrace(vcdPath)
	if err != nil {
		return err
	}

	switch dumpFormat {
	case "json":
		return dumpJSON(f, vcdPath)
	case "text":
		return dumpText(f)
	default:
		return fmt.Errorf("unknown format: %s", dumpFormat)
	}
}

func dumpJSON(f *vcd.File, vcdPath string) error {
	stats := f.Stats()
	dump := &VCDDump{
		File:   vcdPath,
		Header: f.Header(),
		Stats: StatsDump{
			Signals:    stats.Signals,
			Timestamps: stats.Timestamps,
			Changes:    stats.Changes,
			Warnings:   stats.Warnings,
		},
	}

	for _, s := range f.Signals() {
		dump.Signals = append(dump.Signals, SignalDump{
			Name:  s.Name,
			Code:  s.Code,
			Type:  s.Type,
			Width: s.Width,
			Range: s.Range,
		})
	}

	for i, t := range f.Rows() {
		dump.Rows = append(dump.Rows, RowDump{Index: i, Time: t, Values: f.FetchRow(i)})
	}

	for _, w := range f.Warnings() {
		dump.Warnings = append(dump.Warnings, WarningDump{Line: w.Line, Text: w.Text})
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}

func dumpText(f *vcd.File) error {
	fmt.Fprintln(output, "=== VCD Information ===")
	printInfo(f)

	columns := f.Columns()
	for i, t := range f.Rows() {
		fmt.Fprintln(output)
		fmt.Fprintf(output, "=== Row %d @ %d ===\n", i, t)
		printSnapshot(columns, f.FetchRow(i))
	}

	if warnings := f.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(output)
		fmt.Fprintln(output, "=== Skipped Lines ===")
		for _, w := range warnings {
			fmt.Fprintf(output, "%6d: %s\n", w.Line, w.Text)
		}
	}
	return nil
}
