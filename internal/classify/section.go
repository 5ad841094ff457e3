package classify

import "strings"

const (
	markerHave = "[h]"
	markerWant = "[w]"
)

// ScopeOffering returns the "[H]" part of a lowercased have/want title:
// from the [h] marker up to a later [w] marker, or to the end of the title.
// Titles without [h] are not eligible and return false.
func ScopeOffering(lower string) (string, bool) {
	h := strings.Index(lower, markerHave)
	if h < 0 {
		return "", false
	}
	if w := strings.Index(lower[h:], markerWant); w > 0 {
		return lower[h : h+w], true
	}
	return lower[h:], true
}
