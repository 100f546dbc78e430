// Command bpgadgets proves and verifies gadget statements from YAML files.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/PolyhedraZK/bpgadgets"
)

var (
	logLevel string
	logFile  string
	tasks    int
)

var rootCmd = &cobra.Command{
	Use:           "bpgadgets",
	Short:         "Bulletproofs proofs over named gadgets",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
}

func setupLogger() error {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if logFile != "" {
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	logger.Set(zerolog.New(w).Level(lvl).With().Timestamp().Logger())
	return nil
}

func newEngine(opts ...bpgadgets.Option) (*bpgadgets.Engine, error) {
	return bpgadgets.New(nil, append(opts, bpgadgets.WithMSMTasks(tasks))...)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error|disabled")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file with rotation instead of stderr")
	rootCmd.PersistentFlags().IntVar(&tasks, "msm-tasks", 1, "goroutines per multiscalar multiplication")

	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(gadgetsCmd)
	rootCmd.AddCommand(mimcHashCmd)
	rootCmd.AddCommand(merkleRootCmd)
	rootCmd.AddCommand(benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
