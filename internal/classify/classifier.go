package classify

import "strings"

// Classifier decides whether a listing title deserves an alert.
type Classifier interface {
	Classify(title string) (Result, bool)
}

// Primary classifies deals-feed titles with the price rules.
type Primary struct {
	rules Chain
}

// NewPrimary builds the deals-feed classifier for the given thresholds.
func NewPrimary(th Thresholds) *Primary {
	return &Primary{rules: PrimaryRules(th)}
}

// Classify implements Classifier.
func (p *Primary) Classify(title string) (Result, bool) {
	return p.rules.Evaluate(NewTitle(title))
}

// Secondary classifies have/want titles by keyword only, looking at the
// offering segment and never at what the poster wants.
type Secondary struct {
	rules Chain
}

// NewSecondary builds the have/want classifier over the given watchlist.
func NewSecondary(w Watchlist) *Secondary {
	return &Secondary{rules: SecondaryRules(w)}
}

// SecondaryRules returns the watchlist rule followed by the PSU rule, both
// applied to an offering segment. No price threshold applies.
func SecondaryRules(w Watchlist) Chain {
	return Chain{
		{Name: RuleWatchlist, Match: func(t Title) (string, bool) {
			label, ok := w.First(t.Lower)
			if !ok {
				return "", false
			}
			return "CHS match (H): " + label, true
		}},
		{Name: RulePSU, Match: func(t Title) (string, bool) {
			if !HasPSU1000W(t.Lower) {
				return "", false
			}
			return "CHS match (H): 1000W PSU", true
		}},
	}
}

// Classify implements Classifier.
func (s *Secondary) Classify(title string) (Result, bool) {
	segment, ok := ScopeOffering(strings.ToLower(title))
	if !ok {
		return Result{}, false
	}
	return s.rules.Evaluate(NewTitle(segment))
}
