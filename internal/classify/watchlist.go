package classify

import (
	"fmt"
	"regexp"
)

// WatchSpec is an uncompiled watchlist entry as written in a watchlist file.
type WatchSpec struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

// WatchEntry is a compiled watchlist entry.
type WatchEntry struct {
	Label   string
	Pattern *regexp.Regexp
}

// Watchlist is an ordered list of GPU model patterns. More specific entries
// come first so "RTX 4080 SUPER" is reported before a bare "4080" can claim it.
type Watchlist []WatchEntry

// DefaultWatchSpecs is the built-in GPU watchlist.
var DefaultWatchSpecs = []WatchSpec{
	{Label: "RTX 5090", Pattern: `\brtx\s*-?\s*5090\b`},
	{Label: "5090", Pattern: `(?:^|\D)5090(?:\D|$)`},
	{Label: "RTX 4090", Pattern: `\brtx\s*-?\s*4090\b`},
	{Label: "4090", Pattern: `(?:^|\D)4090(?:\D|$)`},
	{Label: "RTX 4080 SUPER", Pattern: `\brtx\s*-?\s*4080\s*-?\s*super\b`},
	{Label: "4080 SUPER", Pattern: `\b4080\s*-?\s*super\b`},
	{Label: "RTX 4080", Pattern: `\brtx\s*-?\s*4080\b`},
	{Label: "4080", Pattern: `(?:^|\D)4080(?:\D|$)`},
	{Label: "RTX 5070 Ti", Pattern: `\brtx\s*-?\s*5070\s*-?\s*ti\b`},
	{Label: "5070 Ti", Pattern: `\b5070\s*-?\s*ti\b`},
	{Label: "RX 9070 XT", Pattern: `\brx\s*-?\s*9070\s*-?\s*xt\b`},
	{Label: "9070 XT", Pattern: `\b9070\s*-?\s*xt\b`},
	{Label: "RX 9070", Pattern: `\brx\s*-?\s*9070\b`},
	{Label: "RX 7900 XTX", Pattern: `\brx\s*-?\s*7900\s*-?\s*xtx\b`},
	{Label: "7900 XTX", Pattern: `\b7900\s*-?\s*xtx\b`},
	{Label: "RX 7900 XT", Pattern: `\brx\s*-?\s*7900\s*-?\s*xt\b`},
	{Label: "7900 XT", Pattern: `\b7900\s*-?\s*xt\b`},
}

// CompileWatchlist compiles specs case-insensitively, keeping their order.
func CompileWatchlist(specs []WatchSpec) (Watchlist, error) {
	w := make(Watchlist, 0, len(specs))
	for i, s := range specs {
		if s.Label == "" {
			return nil, fmt.Errorf("watchlist entry %d: empty label", i)
		}
		if s.Pattern == "" {
			return nil, fmt.Errorf("watchlist entry %q: empty pattern", s.Label)
		}
		re, err := regexp.Compile("(?i)" + s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("watchlist entry %q: %w", s.Label, err)
		}
		w = append(w, WatchEntry{Label: s.Label, Pattern: re})
	}
	return w, nil
}

// DefaultWatchlist returns the compiled built-in watchlist.
func DefaultWatchlist() Watchlist {
	w, err := CompileWatchlist(DefaultWatchSpecs)
	if err != nil {
		panic(err)
	}
	return w
}

// First returns the label of the first entry matching text.
func (w Watchlist) First(text string) (string, bool) {
	for _, e := range w {
		if e.Pattern.MatchString(text) {
			return e.Label, true
		}
	}
	return "", false
}
