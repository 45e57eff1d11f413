// Package skills canonicalizes skill names and holds a candidate's skills keyed by canonical name.
package skills

import "strings"

// Normalize returns the canonical comparison key of a skill name:
// surrounding whitespace removed and lower-cased.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Equal reports whether two skill names share a canonical key.
// Empty names never match anything.
func Equal(a, b string) bool {
	ka := Normalize(a)
	return ka != "" && ka == Normalize(b)
}

// NormalizeAll returns the distinct non-empty canonical keys of names, in first-seen order.
func NormalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := Normalize(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
