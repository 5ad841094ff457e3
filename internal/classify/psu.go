package classify

import (
	"regexp"
	"strings"
)

var (
	// 1000w, 1,000w, 1 000w; the leading 1 must not follow another digit.
	re1000W = regexp.MustCompile(`(?i)(?:^|\D)1[, ]?000\s*w\b`)
	re1KW   = regexp.MustCompile(`(?i)\b1\s*k\s*w\b`)
)

// HasPSU1000W reports whether text mentions a power supply rated 1000W.
func HasPSU1000W(text string) bool {
	t := strings.ToLower(text)
	if !strings.Contains(t, "psu") && !strings.Contains(t, "power supply") {
		return false
	}
	return re1000W.MatchString(t) || re1KW.MatchString(t)
}
