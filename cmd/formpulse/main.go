package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var debugLogging bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "formpulse",
		Short: "formpulse - survey scoring and branching-logic engine",
		Long: `formpulse validates survey definitions, scores response sets, and replays
branching-logic traversal. Definitions are read from YAML or JSON files;
responses are read from JSON or YAML maps of question id to answer.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "enable debug logging")

	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(scoreCmd())
	rootCmd.AddCommand(traceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debugLogging {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
