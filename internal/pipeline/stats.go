package pipeline

import (
	"fmt"
	"time"
)

// Stats tallies per-outcome counts for one classification run. Only the
// coordinator's drain loop mutates it; readers see it after Run
// returns.
type Stats struct {
	// RunID identifies this run in logs and reports.
	RunID string

	// Total is the number of candidate files enumerated.
	Total int

	// Copied is the number of kept templates written to the
	// destination.
	Copied int

	// Duplicates is the number of templates whose fingerprint had
	// already been claimed by an earlier completion.
	Duplicates int

	// SeverityExcluded counts templates dropped by the excluded
	// severity set.
	SeverityExcluded int

	// KeywordExcluded counts templates dropped by the static-asset
	// keyword policy.
	KeywordExcluded int

	// Failed counts templates whose evaluation failed (unreadable or
	// not valid text).
	Failed int

	// NoSignature counts templates with no request block. Not truly a
	// failure, but historically folded into the same bucket; see
	// Skipped.
	NoSignature int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Skipped is the folded failure bucket: read failures plus templates
// with no request block. Downstream consumers of the historical single
// error count should use this.
func (s *Stats) Skipped() int {
	return s.Failed + s.NoSignature
}

// Summary returns a human-readable report of the run. When foldSkips is
// true, failures and no-signature skips are reported as one line, the
// historical format; otherwise they are broken out separately.
func (s *Stats) Summary(foldSkips bool) string {
	out := fmt.Sprintf(
		"Run %s completed in %v\n"+
			"Templates found: %d\n"+
			"Copied: %d\n"+
			"Duplicates skipped: %d\n"+
			"Severity-excluded: %d\n"+
			"Keyword-excluded: %d\n",
		s.RunID, s.Elapsed.Round(time.Millisecond),
		s.Total, s.Copied, s.Duplicates, s.SeverityExcluded, s.KeywordExcluded,
	)
	if foldSkips {
		return out + fmt.Sprintf("Errors/skips: %d", s.Skipped())
	}
	return out + fmt.Sprintf("Failed: %d\nNo request block: %d", s.Failed, s.NoSignature)
}
