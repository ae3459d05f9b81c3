package scanner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/K0NGR3SS/codesentry/internal/config"
	"github.com/K0NGR3SS/codesentry/internal/models"
)

const maxSnippet = 160

// Rule is a line-oriented vulnerability check.
type Rule struct {
	ID             string
	Name           string
	Risk           models.RiskLevel
	Pattern        *regexp.Regexp
	Exclude        *regexp.Regexp // a line matching Exclude is not reported
	Recommendation string
	Disabled       bool
}

func (r Rule) matches(line string) bool {
	if !r.Pattern.MatchString(line) {
		return false
	}
	return r.Exclude == nil || !r.Exclude.MatchString(line)
}

// Scanner runs the registered rules over pasted or loaded source code.
type Scanner struct {
	rules []Rule
}

// New creates a scanner with the built-in rule set.
func New() *Scanner {
	s := &Scanner{}
	s.registerDefaultRules()
	return s
}

// NewWithRules creates a scanner that only runs the given rules.
func NewWithRules(rules ...Rule) *Scanner {
	return &Scanner{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the registered rules.
func (s *Scanner) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Scan checks every line of code and returns findings in line order, with
// rule registration order breaking ties. Blank lines are skipped; comment
// lines are scanned like any other line.
func (s *Scanner) Scan(code string) []models.Finding {
	var findings []models.Finding

	for i, raw := range strings.Split(code, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		for _, rule := range s.rules {
			if rule.Disabled || !rule.matches(line) {
				continue
			}
			findings = append(findings, models.Finding{
				Vulnerability:  rule.Name,
				RuleID:         rule.ID,
				Risk:           rule.Risk,
				Line:           i + 1,
				Snippet:        truncate(trimmed, maxSnippet),
				Recommendation: rule.Recommendation,
			})
		}
	}

	return findings
}

// ApplyConfig disables or re-rates rules by ID.
func (s *Scanner) ApplyConfig(cfg config.ScannerConfig) {
	for i := range s.rules {
		rule := &s.rules[i]
		rc, ok := cfg.Rules[rule.ID]
		if !ok {
			continue
		}
		if rc.Disabled {
			rule.Disabled = true
		}
		if risk, ok := models.ParseRisk(rc.Risk); ok {
			rule.Risk = risk
		}
	}
}

func (s *Scanner) registerRule(id, name string, risk models.RiskLevel, pattern, exclude, recommendation string) {
	rule := Rule{
		ID:             id,
		Name:           name,
		Risk:           risk,
		Pattern:        regexp.MustCompile(pattern),
		Recommendation: recommendation,
	}
	if exclude != "" {
		rule.Exclude = regexp.MustCompile(exclude)
	}
	s.rules = append(s.rules, rule)
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
