package template

import (
	"regexp"
	"strings"
	"unicode"
)

// signatureStart matches the protocol declaration that begins a
// template's request block. Only a match at column 0 counts; the same
// keywords inside description text must not anchor a block.
var signatureStart = regexp.MustCompile(`(?m)^(requests|http):`)

// ExtractSignature returns the normalized signature of a template: the
// text from the first request declaration to end of file, with comment
// lines removed and all whitespace collapsed away. ok is false when the
// content contains no request block at all.
func ExtractSignature(content string) (sig string, ok bool) {
	loc := signatureStart.FindStringIndex(content)
	if loc == nil {
		return "", false
	}
	return Normalize(content[loc[0]:]), true
}

// Normalize strips comment lines (trimmed form starting with "#") and
// removes every whitespace character from block. Two blocks that differ
// only in comments, indentation, or line breaks normalize to the
// identical string. Normalize is idempotent.
func Normalize(block string) string {
	var b strings.Builder
	b.Grow(len(block))
	for _, line := range strings.Split(block, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		for _, r := range line {
			if !unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
