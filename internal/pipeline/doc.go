// Package pipeline coordinates concurrent template classification.
//
// # Overview
//
// A run walks a source tree for template files, evaluates each one
// concurrently with bounded parallelism, and copies the kept set into a
// destination directory. Per-file evaluation is pure (see the template
// package); all shared state lives here.
//
// # Concurrency model
//
// Workers evaluate files independently and send their outcomes on a
// channel; a single drain goroutine consumes outcomes in completion
// order and is the only writer to the seen-fingerprint set and the run
// statistics, so no locks are needed. Completion order is not
// submission order: for templates sharing a fingerprint, whichever
// completes first is the one kept. With workers=1 the run is fully
// deterministic.
//
// # Exclusion precedence
//
// For each outcome, the first matching rule wins:
//
//  1. evaluation failure or no request block
//  2. duplicate fingerprint
//  3. excluded severity
//  4. static-asset keyword flag
//  5. keep: claim the fingerprint and copy the file
//
// Dedup is checked before the policy filters, so the first-seen copy of
// a duplicate group determines the outcome the whole group is
// attributed to.
//
// # Failure policy
//
// Per-file failures are logged, counted, and optionally archived; they
// never abort the run. Resource-level failures (unreadable source,
// directories that cannot be created, destination write errors) are
// fatal. There are no retries and no per-file timeouts.
package pipeline
