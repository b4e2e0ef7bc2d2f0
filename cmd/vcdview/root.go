package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skdltmxn/vcd-go/internal/config"
	"github.com/skdltmxn/vcd-go/internal/metrics"
	"github.com/skdltmxn/vcd-go/vcd"
)

var (
	outputFile string
	configDir  string
	verbose    bool
	delimiter  string
	strict     bool

	output io.Writer
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vcdview",
	Short: "VCD waveform viewer and query tool",
	Long: `vcdview is a command-line tool for inspecting Value Change Dump
(VCD) files produced by digital-hardware simulators.

It can list signals and timestamps, resolve every signal at a row or a
point in time, aggregate clock cycles, and serve queries over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		flags := cmd.Flags()
		if flags.Changed("delimiter") {
			cfg.Delimiter = delimiter
		}
		if flags.Changed("strict") {
			cfg.Strict = strict
		}
		if flags.Changed("verbose") {
			cfg.Verbose = verbose
		}

		level := slog.LevelWarn
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing .vcdview.yml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", vcd.DefaultDelimiter, "separator between scope names")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "fail on unrecognized data lines")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(rowsCmd)
	rootCmd.AddCommand(rowCmd)
	rootCmd.AddCommand(valueCmd)
	rootCmd.AddCommand(cyclesCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(serveCmd)
}

// openTrace parses path with the configured options and records the outcome.
func openTrace(path string) (*vcd.File, error) {
	f, err := vcd.Open(path, cfg.Options(logger)...)
	metrics.RecordParse(f, err)
	if err != nil {
		return nil, fmt.Errorf("failed to open VCD: %w", err)
	}
	return f, nil
}
