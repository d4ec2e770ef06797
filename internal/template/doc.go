// Package template analyzes individual PoC template files.
//
// # Overview
//
// A template's identity, for deduplication purposes, is its request
// block: the text from the first line starting with "requests:" or
// "http:" through end of file. Two templates that differ only in
// comments, indentation, or line breaks inside that block are
// considered the same template.
//
// The package provides three independent analyses:
//
//  1. Signature extraction and fingerprinting (ExtractSignature,
//     Fingerprint): produces the 128-bit dedup key.
//  2. Severity extraction (Severity): the declared criticality label,
//     lower-cased, "unknown" when absent.
//  3. Keyword policy (KeywordPolicy): a heuristic flag for templates
//     that probe generic static assets (/readme.txt, /style.css)
//     rather than real vulnerabilities.
//
// Evaluator composes all three into a single per-file Result. A file
// without a request block is reported via ErrNoSignature; it is a skip
// category, not a failure, and is never hashed.
//
// All functions here are pure with respect to shared state, so
// evaluations can run concurrently without coordination. The pipeline
// package owns the shared dedup set.
package template
