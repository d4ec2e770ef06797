package template

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// ErrNoSignature marks templates with no request block. It is a skip
// category, not a failure: such files are never hashed and never
// copied. Callers distinguish it from read failures with errors.Is.
var ErrNoSignature = errors.New("template has no request block")

// Result is the per-file classification record. It is created once by
// Evaluate, never mutated, and consumed exactly once by the pipeline.
type Result struct {
	// Path is the absolute or source-relative path that was evaluated.
	Path string

	// Filename is the base name; kept files land in the destination
	// under this name.
	Filename string

	// Fingerprint is the dedup key derived from the request block.
	Fingerprint string

	// Severity is the declared criticality label, lower-cased,
	// SeverityUnknown when absent.
	Severity string

	// KeywordSkip is true when the static-asset keyword policy fired.
	KeywordSkip bool
}

// Evaluator classifies individual template files against a keyword
// policy. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	keywords KeywordPolicy
}

// NewEvaluator creates an evaluator using the given keyword policy.
func NewEvaluator(keywords KeywordPolicy) *Evaluator {
	return &Evaluator{keywords: keywords}
}

// Evaluate reads and classifies a single template file. Each file is
// attempted exactly once; there are no retries. A read or decode
// failure returns an error carrying the path and cause. A file without
// a request block returns an error wrapping ErrNoSignature.
func (e *Evaluator) Evaluate(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading %s: content is not valid UTF-8", path)
	}
	content := string(data)

	sig, ok := ExtractSignature(content)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSignature)
	}

	return &Result{
		Path:        path,
		Filename:    filepath.Base(path),
		Fingerprint: Fingerprint(sig),
		Severity:    Severity(content),
		KeywordSkip: e.keywords.Flag(content),
	}, nil
}
