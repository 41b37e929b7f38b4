// Package slug derives URL-safe identifiers from human-entered titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	disallowed  = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
	hyphenRuns  = regexp.MustCompile(`-+`)
	validFormat = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Derive turns a title into a slug: lowercase, trimmed, characters outside
// [a-z0-9], whitespace and '-' removed, whitespace runs and hyphen runs
// collapsed to a single '-', no leading or trailing '-'.
// Derive(Derive(t)) == Derive(t). The result is empty when the title has no
// ASCII letters or digits.
func Derive(title string) string {
	s := strings.Map(spaceToASCII, strings.ToLower(title))
	s = strings.TrimSpace(s)
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// spaceToASCII maps Unicode whitespace (NBSP, thin space, BOM) to ' ' so it
// separates words instead of being stripped as a disallowed character.
func spaceToASCII(r rune) rune {
	if unicode.IsSpace(r) || r == '\uFEFF' {
		return ' '
	}
	return r
}

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return validFormat.MatchString(s)
}
