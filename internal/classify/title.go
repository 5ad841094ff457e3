// Package classify implements the listing title classifiers: price
// extraction, category rules and the have/want section scoping.
package classify

import (
	"regexp"
	"strings"
)

var (
	reCPUTag      = regexp.MustCompile(`\[(cpu[^\]]*)\]`)
	reMoboTag     = regexp.MustCompile(`\[(?:mobo|motherboard)[^\]]*\]`)
	reCPUThenMobo = regexp.MustCompile(`cpu\s*(?:\+|/|&)?\s*(?:mobo|motherboard)`)
	reProcessor   = regexp.MustCompile(`\bprocessor\b`)
)

// Title is a listing title with the signals the rules look at.
type Title struct {
	Raw        string
	Lower      string
	Normalized string
	Price      int
	HasPrice   bool

	// cpuTag holds the contents of the first [cpu...] tag.
	cpuTag    string
	hasCPUTag bool
	hasMobo   bool
}

// NewTitle lowercases and normalizes raw, extracts its price and tag signals.
func NewTitle(raw string) Title {
	lower := strings.ToLower(raw)
	t := Title{
		Raw:        raw,
		Lower:      lower,
		Normalized: Normalize(lower),
	}
	t.Price, t.HasPrice = ExtractPrice(raw)

	if m := reCPUTag.FindStringSubmatch(lower); m != nil {
		t.cpuTag = m[1]
		t.hasCPUTag = true
	}

	t.hasMobo = strings.Contains(lower, "mobo") ||
		strings.Contains(lower, "motherboard") ||
		reMoboTag.MatchString(lower) ||
		strings.Contains(t.cpuTag, "mobo") ||
		strings.Contains(t.cpuTag, "motherboard")
	return t
}

// IsCombo reports a CPU sold together with a motherboard.
func (t Title) IsCombo() bool {
	return (t.hasCPUTag && t.hasMobo) || reCPUThenMobo.MatchString(t.Lower)
}

// IsCPUBundle reports a [CPU Bundle]-style listing.
func (t Title) IsCPUBundle() bool {
	return strings.Contains(t.cpuTag, "bundle") || strings.Contains(t.Lower, "cpu bundle")
}

// MentionsCPU reports a CPU tag or a standalone "cpu"/"processor" word.
func (t Title) MentionsCPU() bool {
	return t.hasCPUTag ||
		reProcessor.MatchString(t.Lower) ||
		strings.Contains(" "+t.Lower+" ", " cpu ")
}

// IsStandaloneMotherboard reports a motherboard signal without any CPU tag.
func (t Title) IsStandaloneMotherboard() bool {
	return t.hasMobo && !t.hasCPUTag
}

// KnownModels returns the models whose name occurs in the normalized title,
// in the order given.
func (t Title) KnownModels(models []string) []string {
	var found []string
	for _, m := range models {
		if m != "" && strings.Contains(t.Normalized, Normalize(m)) {
			found = append(found, m)
		}
	}
	return found
}
