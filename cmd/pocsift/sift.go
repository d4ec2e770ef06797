package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pocsift/internal/pipeline"
)

var siftCmd = &cobra.Command{
	Use:   "sift",
	Short: "Classify templates and copy the kept set to the output directory",
	Long: `Scan a source tree for .yaml/.yml templates, deduplicate them on
their request-block fingerprint, filter by severity and static-asset
keywords, and copy the survivors into the output directory.

Configuration layers, later wins: defaults, config file (--config),
POCSIFT_* environment variables, command-line flags.

Duplicate survivorship under concurrency is first-completed-wins; run
with --workers 1 when a reproducible survivor matters. Final counts are
identical at any worker count.

Examples:
  pocsift sift -s ./nuclei-templates -o ./curated
  pocsift sift -s ./poc -o ./out -e info -e low -w 8
  pocsift sift -s ./poc -o ./out --collect-errors
  pocsift sift --config pocsift.yaml --split-skips`,
	RunE: runSift,
}

func runSift(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := pipeline.LoadConfigFile(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	applySiftFlags(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.CollectErrors {
		fmt.Printf("%s\n", color.YellowString("Collecting failed files into %s", cfg.ErrorDir))
	}

	coord, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	stats, err := coord.Run(cmd.Context())
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("\n%s %s\n", green("✓"), stats.Summary(cfg.FoldSkips))
	fmt.Printf("\nFailure details: %s\n", errorLogPath)
	return nil
}

// applySiftFlags overlays flags the user actually set onto cfg, so flag
// defaults don't clobber config-file or environment values.
func applySiftFlags(cmd *cobra.Command, cfg *pipeline.Config) {
	if cmd.Flags().Changed("source") {
		cfg.SourceDir, _ = cmd.Flags().GetString("source")
	}
	if cmd.Flags().Changed("output") {
		cfg.DestDir, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("exclude-severity") {
		cfg.ExcludedSeverities, _ = cmd.Flags().GetStringArray("exclude-severity")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("collect-errors") {
		cfg.CollectErrors, _ = cmd.Flags().GetBool("collect-errors")
	}
	if cmd.Flags().Changed("error-dir") {
		cfg.ErrorDir, _ = cmd.Flags().GetString("error-dir")
	}
	if cmd.Flags().Changed("split-skips") {
		split, _ := cmd.Flags().GetBool("split-skips")
		cfg.FoldSkips = !split
	}
}

func init() {
	siftCmd.Flags().StringP("source", "s", "", "Source tree to scan for templates")
	siftCmd.Flags().StringP("output", "o", "", "Destination directory for kept templates")
	siftCmd.Flags().StringArrayP("exclude-severity", "e", []string{"info"}, "Severity label to drop (repeatable)")
	siftCmd.Flags().IntP("workers", "w", 4, "Worker pool size for file evaluation")
	siftCmd.Flags().Bool("collect-errors", false, "Copy files whose evaluation failed into the error directory")
	siftCmd.Flags().String("error-dir", "error_files", "Directory receiving failed files")
	siftCmd.Flags().Bool("split-skips", false, "Report no-signature skips separately from read failures")
	siftCmd.Flags().String("config", "pocsift.yaml", "Path of the yaml config file")

	rootCmd.AddCommand(siftCmd)
}
