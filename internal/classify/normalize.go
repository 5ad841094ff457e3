package classify

import "strings"

// Normalize lowercases s and drops every character that is not an ASCII
// letter or digit, so "Ryzen 7 5800X-3D" becomes "ryzen758003d".
func Normalize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}
