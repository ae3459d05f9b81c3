package models

import "strings"

type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL" // code execution or key material (e.g. eval, private keys)
	RiskHigh     RiskLevel = "HIGH"     // injection or data exposure (e.g. SQL formatting)
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
)

var riskRank = map[RiskLevel]int{
	RiskLow:      1,
	RiskMedium:   2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// ParseRisk normalizes a risk name. Unknown names return false.
func ParseRisk(s string) (RiskLevel, bool) {
	r := RiskLevel(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := riskRank[r]
	return r, ok
}

// AtLeast reports whether r is as severe as min. An empty min admits everything.
func (r RiskLevel) AtLeast(min RiskLevel) bool {
	if min == "" {
		return true
	}
	return riskRank[r] >= riskRank[min]
}

// Finding is a single result of the local vulnerability scan.
type Finding struct {
	Vulnerability  string    `json:"vulnerability"`
	RuleID         string    `json:"rule_id"`
	Risk           RiskLevel `json:"risk"`
	Line           int       `json:"line"`
	Snippet        string    `json:"snippet"`
	Recommendation string    `json:"recommendation"`
}

// FilterByRisk keeps findings at or above min, preserving order.
func FilterByRisk(findings []Finding, min RiskLevel) []Finding {
	var filtered []Finding
	for _, f := range findings {
		if f.Risk.AtLeast(min) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
