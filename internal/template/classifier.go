package template

import (
	"regexp"
	"strings"
)

// SeverityUnknown is reported for templates that declare no severity.
const SeverityUnknown = "unknown"

var severityPattern = regexp.MustCompile(`(?m)^\s*severity:\s*(\w+)`)

// Severity returns the template's declared severity label, lower-cased.
// Templates without a severity line report SeverityUnknown.
func Severity(content string) string {
	m := severityPattern.FindStringSubmatch(content)
	if m == nil {
		return SeverityUnknown
	}
	return strings.ToLower(m[1])
}

// KeywordPolicy flags templates that probe generic static assets rather
// than real targets. A template is flagged when any single line
// contains at least one primary and at least one secondary keyword.
// Containment is plain case-sensitive substring matching.
type KeywordPolicy struct {
	Primary   []string
	Secondary []string
}

// DefaultKeywordPolicy returns the stock static-asset heuristics:
// request verbs paired with boilerplate probe paths.
func DefaultKeywordPolicy() KeywordPolicy {
	return KeywordPolicy{
		Primary:   []string{"HTTP", "GET", "POST", "PUT", "BaseURL"},
		Secondary: []string{"/readme.txt", "/style.css"},
	}
}

// Match reports whether a single line trips the policy.
func (p KeywordPolicy) Match(line string) bool {
	return containsAny(line, p.Primary) && containsAny(line, p.Secondary)
}

// Flag scans content line by line, short-circuiting on the first line
// that trips the policy.
func (p KeywordPolicy) Flag(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if p.Match(line) {
			return true
		}
	}
	return false
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
