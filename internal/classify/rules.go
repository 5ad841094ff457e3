package classify

import (
	"fmt"
	"strings"
)

// Thresholds are the price ceilings and keywords of the price rules.
// A listing matches a ceiling only when its price is strictly below it.
type Thresholds struct {
	GPULimit         int
	MonitorLimit     int
	CPULimit         int
	CPUBundleLimit   int
	ComboLimit       int
	MotherboardLimit int
	GPUKeyword       string
	CPUModels        []string
}

// Result is the outcome of a rule that fired.
type Result struct {
	Rule   string
	Reason string
}

// Rule is a named predicate over a title that yields a reason when it fires.
type Rule struct {
	Name  string
	Match func(t Title) (reason string, ok bool)
}

// Chain evaluates rules in order; the first rule that fires wins.
type Chain []Rule

// Evaluate returns the result of the first matching rule.
func (c Chain) Evaluate(t Title) (Result, bool) {
	for _, r := range c {
		if reason, ok := r.Match(t); ok {
			return Result{Rule: r.Name, Reason: reason}, true
		}
	}
	return Result{}, false
}

// Rule names.
const (
	RuleCombo       = "cpu_mobo_combo"
	RuleCPUBundle   = "cpu_bundle"
	RuleCPU         = "cpu"
	RuleMotherboard = "motherboard"
	RuleGPU         = "gpu"
	RuleMonitor     = "monitor"
	RulePSU         = "psu_1000w"
	RuleWatchlist   = "gpu_watchlist"
)

// PrimaryRules returns the deals-feed rules, most specific category first:
// a CPU+motherboard combo also carries a CPU tag and a mobo word, so it
// must be claimed before the looser CPU and motherboard rules.
func PrimaryRules(th Thresholds) Chain {
	return Chain{
		{Name: RuleCombo, Match: comboRule(th.ComboLimit)},
		{Name: RuleCPUBundle, Match: cpuBundleRule(th.CPUBundleLimit)},
		{Name: RuleCPU, Match: cpuRule(th.CPULimit, th.CPUModels)},
		{Name: RuleMotherboard, Match: motherboardRule(th.MotherboardLimit)},
		{Name: RuleGPU, Match: gpuRule(th.GPUKeyword, th.GPULimit)},
		{Name: RuleMonitor, Match: monitorRule(th.MonitorLimit)},
		{Name: RulePSU, Match: psuRule},
	}
}

func under(t Title, limit int) bool {
	return t.HasPrice && t.Price < limit
}

func comboRule(limit int) func(Title) (string, bool) {
	return func(t Title) (string, bool) {
		if !under(t, limit) || !t.IsCombo() {
			return "", false
		}
		return fmt.Sprintf("CPU+Mobo Bundle $%d", t.Price), true
	}
}

func cpuBundleRule(limit int) func(Title) (string, bool) {
	return func(t Title) (string, bool) {
		if !under(t, limit) || !t.IsCPUBundle() {
			return "", false
		}
		return fmt.Sprintf("CPU Bundle $%d", t.Price), true
	}
}

func cpuRule(limit int, models []string) func(Title) (string, bool) {
	return func(t Title) (string, bool) {
		if !under(t, limit) {
			return "", false
		}
		known := t.KnownModels(models)
		if !t.MentionsCPU() && len(known) == 0 {
			return "", false
		}
		reason := fmt.Sprintf("CPU $%d", t.Price)
		if len(known) > 0 {
			upper := make([]string, len(known))
			for i, m := range known {
				upper[i] = strings.ToUpper(m)
			}
			reason += " models: " + strings.Join(upper, ",")
		}
		return reason, true
	}
}

func motherboardRule(limit int) func(Title) (string, bool) {
	return func(t Title) (string, bool) {
		if !under(t, limit) || !t.IsStandaloneMotherboard() {
			return "", false
		}
		return fmt.Sprintf("Motherboard $%d", t.Price), true
	}
}

func gpuRule(keyword string, limit int) func(Title) (string, bool) {
	keyword = strings.ToLower(keyword)
	return func(t Title) (string, bool) {
		if keyword == "" || !strings.Contains(t.Lower, keyword) || !under(t, limit) {
			return "", false
		}
		return fmt.Sprintf("GPU $%d", t.Price), true
	}
}

func monitorRule(limit int) func(Title) (string, bool) {
	return func(t Title) (string, bool) {
		if !strings.Contains(t.Lower, "monitor") || !under(t, limit) {
			return "", false
		}
		return fmt.Sprintf("Monitor $%d", t.Price), true
	}
}

func psuRule(t Title) (string, bool) {
	if !HasPSU1000W(t.Lower) {
		return "", false
	}
	if t.HasPrice {
		return fmt.Sprintf("PSU 1000W $%d", t.Price), true
	}
	return "PSU 1000W", true
}
