package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is stamped at build time via -ldflags.
var version = "dev"

var (
	verbose      bool
	errorLogPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pocsift",
	Short: "pocsift - deduplicating curator for PoC template trees",
	Long: `pocsift classifies a directory tree of security-detection (PoC)
templates into keep and discard sets.

Each template is fingerprinted on its request block with comments and
formatting ignored, deduplicated on that fingerprint, then filtered by
severity and static-asset keyword heuristics. Kept templates are copied
byte-for-byte into the output directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that do no classification don't need the logger
		// (and shouldn't create an error log as a side effect).
		switch cmd.Name() {
		case "version", "init-config", "help", "completion":
			return nil
		}

		// .env is optional; a missing file is fine.
		_ = godotenv.Load()

		var err error
		logger, err = buildLogger(verbose, errorLogPath)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// buildLogger tees a console core against an error-file core. The error
// log is always created, so every run leaves a (possibly empty) failure
// record with one entry per failed file.
func buildLogger(verbose bool, errorLog string) (*zap.Logger, error) {
	consoleLevel := zapcore.InfoLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	errFile, err := os.Create(errorLog)
	if err != nil {
		return nil, fmt.Errorf("creating error log %s: %w", errorLog, err)
	}
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(errFile),
		zapcore.ErrorLevel,
	)

	return zap.New(zapcore.NewTee(consoleCore, fileCore)), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pocsift version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pocsift %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&errorLogPath, "error-log", "processing_errors.log", "Path of the per-file failure log")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
