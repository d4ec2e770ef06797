package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pocsift/internal/corpus"
	"pocsift/internal/template"
)

// progressInterval controls how often the drain loop logs a progress
// line.
const progressInterval = 500

// outcome pairs a completed evaluation with its failure, if any.
// Exactly one of res and err is set.
type outcome struct {
	path string
	res  *template.Result
	err  error
}

// Coordinator runs the evaluation pool and owns all shared dedup state.
//
// Evaluations run concurrently and are side-effect-free on shared
// state; the seen-fingerprint set and the statistics are mutated only
// by the single goroutine draining the results channel, so neither
// needs a lock. Results are consumed in completion order, not
// submission order: for templates sharing a fingerprint, whichever
// completes first is the one kept.
type Coordinator struct {
	cfg    Config
	eval   *template.Evaluator
	logger *zap.Logger
}

// New creates a coordinator for the given configuration. The
// configuration is validated here so Run can assume it is sound.
func New(cfg Config, logger *zap.Logger) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		cfg:    cfg,
		eval:   template.NewEvaluator(cfg.Keywords),
		logger: logger,
	}, nil
}

// Run classifies every template under the source root and copies the
// kept set into the destination directory.
//
// Per-file failures never abort the run; they are logged, counted, and
// optionally archived. Only resource-level failures are fatal: an
// unreadable source tree, directories that cannot be created, or a
// destination write failure. A destination write failure cancels the
// remaining work.
func (c *Coordinator) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()
	stats := &Stats{RunID: uuid.NewString()}

	files, err := corpus.Collect(c.cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("collecting templates: %w", err)
	}
	stats.Total = len(files)
	if len(files) == 0 {
		c.logger.Warn("no template files found",
			zap.String("source", c.cfg.SourceDir))
		stats.Elapsed = time.Since(start)
		return stats, nil
	}

	if err := os.MkdirAll(c.cfg.DestDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating destination directory: %w", err)
	}
	if c.cfg.CollectErrors {
		if err := os.MkdirAll(c.cfg.ErrorDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating error directory: %w", err)
		}
		c.logger.Info("collecting failed files",
			zap.String("error_dir", c.cfg.ErrorDir))
	}

	c.logger.Info("starting run",
		zap.String("run_id", stats.RunID),
		zap.Int("templates", stats.Total),
		zap.Int("workers", c.cfg.Workers))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan outcome)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Workers)

	go func() {
		defer close(results)
		for _, path := range files {
			path := path
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				res, err := c.eval.Evaluate(path)
				if err != nil && c.cfg.CollectErrors && !errors.Is(err, template.ErrNoSignature) {
					c.archiveFailed(path)
				}
				select {
				case results <- outcome{path: path, res: res, err: err}:
				case <-gctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	// Single consumer: the only writer to seen and stats.
	seen := make(map[string]struct{})
	processed := 0
	var fatal error
	for out := range results {
		processed++
		if processed%progressInterval == 0 {
			c.logger.Info("progress",
				zap.Int("processed", processed),
				zap.Int("total", stats.Total))
		}
		if fatal != nil {
			// Keep draining so the pool can wind down, but stop
			// classifying and copying.
			continue
		}

		// Exclusion precedence, first match wins: failure/skip,
		// duplicate, severity, keyword, keep. Dedup runs before the
		// policy filters so an excluded duplicate never claims the
		// fingerprint slot in place of a kept representative.
		switch {
		case errors.Is(out.err, template.ErrNoSignature):
			stats.NoSignature++
			c.logger.Debug("no request block", zap.String("path", out.path))
		case out.err != nil:
			stats.Failed++
			c.logger.Error("evaluation failed",
				zap.String("path", out.path),
				zap.Error(out.err))
		default:
			if _, dup := seen[out.res.Fingerprint]; dup {
				stats.Duplicates++
				continue
			}
			if c.cfg.ExcludesSeverity(out.res.Severity) {
				stats.SeverityExcluded++
				continue
			}
			if out.res.KeywordSkip {
				stats.KeywordExcluded++
				continue
			}
			seen[out.res.Fingerprint] = struct{}{}
			if err := corpus.CopyInto(out.path, c.cfg.DestDir); err != nil {
				fatal = fmt.Errorf("copying to destination: %w", err)
				cancel()
				continue
			}
			stats.Copied++
		}
	}
	if fatal != nil {
		return nil, fatal
	}
	if err := ctx.Err(); err != nil {
		// Caller-initiated cancellation; fatal covers self-cancel.
		return nil, err
	}

	stats.Elapsed = time.Since(start)
	c.logger.Info("run complete",
		zap.String("run_id", stats.RunID),
		zap.Int("copied", stats.Copied),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("severity_excluded", stats.SeverityExcluded),
		zap.Int("keyword_excluded", stats.KeywordExcluded),
		zap.Int("failed", stats.Failed),
		zap.Int("no_signature", stats.NoSignature),
		zap.Duration("elapsed", stats.Elapsed))
	return stats, nil
}

// archiveFailed copies a file whose evaluation failed into the error
// directory. Archival is best-effort: a failed copy is logged, never
// fatal.
func (c *Coordinator) archiveFailed(path string) {
	if err := corpus.CopyInto(path, c.cfg.ErrorDir); err != nil {
		c.logger.Error("archiving failed file",
			zap.String("path", path),
			zap.Error(err))
	}
}
