// Package slug derives URL-safe identifiers from titles and resolves
// collisions against slugs that already exist.
package slug

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback is used when a title has no ASCII letters or digits
const Fallback = "untitled"

// MaxLength caps a generated slug below the 500 character column so a
// "-N" collision suffix still fits
const MaxLength = 480

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Pattern matches a well-formed slug: lowercase alphanumeric words joined by single hyphens
var Pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Generate lowercases title, collapses every run of characters outside
// [a-z0-9] into a single hyphen and trims hyphens from both ends.
func Generate(title string) string {
	s := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	if len(s) > MaxLength {
		s = s[:MaxLength]
		if i := strings.LastIndex(s, "-"); i > MaxLength/2 {
			s = s[:i]
		}
		s = strings.TrimRight(s, "-")
	}
	return s
}

// Resolve returns base if it is free, otherwise base-N for the smallest
// positive N not present in existing.
func Resolve(base string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	if _, ok := taken[base]; !ok {
		return base
	}

	for i := 1; ; i++ {
		candidate := base + "-" + strconv.Itoa(i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// Valid reports whether s is a well-formed slug
func Valid(s string) bool {
	return Pattern.MatchString(s)
}
