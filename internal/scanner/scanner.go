// Package scanner runs listings through the classifiers and drives one
// complete alerting run.
package scanner

import (
	"log/slog"

	"partsalert/internal/classify"
	"partsalert/internal/model"
	"partsalert/internal/storage"
)

// Collector accumulates matches in discovery order.
type Collector struct {
	matches []model.Match
}

// Add appends m.
func (c *Collector) Add(m model.Match) {
	c.matches = append(c.matches, m)
}

// Matches returns the collected matches.
func (c *Collector) Matches() []model.Match {
	return c.matches
}

// Len returns the number of collected matches.
func (c *Collector) Len() int {
	return len(c.matches)
}

// Scanner classifies the listings of one source at a time.
type Scanner struct {
	log *slog.Logger
}

// NewScanner creates a Scanner.
func NewScanner(log *slog.Logger) *Scanner {
	return &Scanner{log: log}
}

// ScanSource classifies every unseen listing. A listing that fires a rule is
// collected and its id marked in seen; other listings are left unmarked so
// they are evaluated again next run. It returns the number of new matches.
func (s *Scanner) ScanSource(src model.Source, listings []model.Listing, c classify.Classifier, seen *storage.SeenSet, out *Collector) int {
	found := 0
	for _, l := range listings {
		if seen.Contains(l.ID) {
			continue
		}
		res, ok := c.Classify(l.Title)
		if !ok {
			continue
		}

		s.log.Debug("listing matched", "source", src.Name, "id", l.ID, "rule", res.Rule)
		out.Add(model.Match{Title: l.Title, Link: l.Link, Reason: res.Reason})
		seen.Mark(l.ID)
		found++
	}
	return found
}
