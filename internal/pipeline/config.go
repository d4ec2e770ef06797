package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"pocsift/internal/template"
)

// Config holds configuration for a classification run.
type Config struct {
	// SourceDir is the root scanned recursively for template files.
	SourceDir string

	// DestDir receives byte-exact copies of kept templates.
	DestDir string

	// ExcludedSeverities lists severity labels whose templates are
	// dropped. Default: info.
	ExcludedSeverities []string

	// Workers is the bounded parallelism degree for file evaluation.
	// Default: 4.
	Workers int

	// CollectErrors copies files whose evaluation failed into ErrorDir
	// for later inspection. Files without a request block are a skip,
	// not a failure, and are never collected.
	CollectErrors bool

	// ErrorDir receives failed files when CollectErrors is set.
	ErrorDir string

	// FoldSkips reports read failures and no-signature skips as one
	// combined bucket, the historical single error count. When false
	// the summary reports them separately.
	FoldSkips bool

	// Keywords is the static-asset keyword policy applied to every
	// template.
	Keywords template.KeywordPolicy
}

// DefaultConfig returns the default run configuration. Source and
// destination have no defaults and must be supplied.
func DefaultConfig() Config {
	return Config{
		ExcludedSeverities: []string{"info"},
		Workers:            4,
		ErrorDir:           "error_files",
		FoldSkips:          true,
		Keywords:           template.DefaultKeywordPolicy(),
	}
}

// Validate checks if the configuration has valid values.
func (c Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source directory is required")
	}
	if c.DestDir == "" {
		return fmt.Errorf("destination directory is required")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive (got %d)", c.Workers)
	}
	if c.Workers > 256 {
		return fmt.Errorf("workers too large (got %d, max 256)", c.Workers)
	}
	if c.CollectErrors && c.ErrorDir == "" {
		return fmt.Errorf("error directory is required when collect-errors is set")
	}
	if len(c.Keywords.Primary) == 0 || len(c.Keywords.Secondary) == 0 {
		return fmt.Errorf("keyword policy must have primary and secondary sets")
	}
	return nil
}

// ExcludesSeverity reports whether templates with the given severity
// label are dropped by this configuration.
func (c Config) ExcludesSeverity(label string) bool {
	for _, s := range c.ExcludedSeverities {
		if s == label {
			return true
		}
	}
	return false
}

// String returns a human-readable representation of the config.
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Source: %s, Dest: %s, ExcludeSeverity: [%s], Workers: %d, "+
			"CollectErrors: %t, ErrorDir: %s, FoldSkips: %t}",
		c.SourceDir, c.DestDir, strings.Join(c.ExcludedSeverities, ","),
		c.Workers, c.CollectErrors, c.ErrorDir, c.FoldSkips,
	)
}

// ConfigFromEnv creates a Config from environment variables, falling
// back to defaults.
//
// Environment variables:
//   - POCSIFT_SOURCE: source directory to scan
//   - POCSIFT_OUTPUT: destination directory for kept templates
//   - POCSIFT_EXCLUDE_SEVERITY: comma-separated severity labels to drop (default: info)
//   - POCSIFT_WORKERS: worker pool size (default: 4)
//   - POCSIFT_COLLECT_ERRORS: copy failed files to the error directory (default: false)
//   - POCSIFT_ERROR_DIR: error collection directory (default: error_files)
//   - POCSIFT_FOLD_SKIPS: fold no-signature skips into the failure count (default: true)
//
// Returns an error if any environment variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays POCSIFT_* environment variables onto c. Unset
// variables leave the existing values untouched.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("POCSIFT_SOURCE"); v != "" {
		c.SourceDir = v
	}
	if v := os.Getenv("POCSIFT_OUTPUT"); v != "" {
		c.DestDir = v
	}
	if v := os.Getenv("POCSIFT_EXCLUDE_SEVERITY"); v != "" {
		c.ExcludedSeverities = splitList(v)
	}
	if v := os.Getenv("POCSIFT_ERROR_DIR"); v != "" {
		c.ErrorDir = v
	}
	if err := parseEnvInt("POCSIFT_WORKERS", &c.Workers); err != nil {
		return err
	}
	if err := parseEnvBool("POCSIFT_COLLECT_ERRORS", &c.CollectErrors); err != nil {
		return err
	}
	if err := parseEnvBool("POCSIFT_FOLD_SKIPS", &c.FoldSkips); err != nil {
		return err
	}
	return nil
}

// splitList splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseEnvInt parses an int from an environment variable.
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable.
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
