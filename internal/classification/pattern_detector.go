// Package classification derives a company label from free-text account
// descriptions using prioritized keyword rules.
package classification

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/normalize"
)

// Rule maps a description pattern to a company label.
// Keyword is matched as a literal substring of the folded description;
// Regex, when set, takes precedence and is matched against the same text.
type Rule struct {
	Company  model.Company `mapstructure:"company" validate:"required"`
	Keyword  string        `mapstructure:"keyword" validate:"required_without=Regex"`
	Regex    string        `mapstructure:"regex"`
	Priority int           `mapstructure:"priority"` // Higher priority rules are checked first
}

type compiledRule struct {
	re *regexp.Regexp
	Rule
}

// Detector classifies descriptions. The zero value classifies everything
// as model.CompanyOther.
type Detector struct {
	rules    []compiledRule
	fallback model.Company
}

// NewDetector compiles the rules. Rules of equal priority keep their
// declaration order, so the first declared matching rule wins.
func NewDetector(rules []Rule) (*Detector, error) {
	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		expr := r.Regex
		if expr == "" {
			expr = regexp.QuoteMeta(normalize.FoldString(r.Keyword))
		}

		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule for %s: %w", r.Company, err)
		}

		compiled = append(compiled, compiledRule{Rule: r, re: re})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &Detector{
		rules:    compiled,
		fallback: model.CompanyOther,
	}, nil
}

// MustDefault returns a detector loaded with DefaultRules.
func MustDefault() *Detector {
	d, err := NewDetector(DefaultRules())
	if err != nil {
		panic(err)
	}
	return d
}

// Classify returns the company of the first matching rule, or the fallback.
// The result depends only on the description.
func (d *Detector) Classify(description any) model.Company {
	if d == nil {
		return model.CompanyOther
	}

	text := normalize.Fold(description)
	for _, r := range d.rules {
		if r.re.MatchString(text) {
			return r.Company
		}
	}

	if d.fallback == "" {
		return model.CompanyOther
	}
	return d.fallback
}

// Annotate returns a copy of ds with target holding the company derived
// from the source column.
func (d *Detector) Annotate(ds model.Dataset, source, target string) model.Dataset {
	return ds.AddColumn(target, func(r model.Row) any {
		return d.Classify(r[source]).String()
	})
}

// RuleCount returns the number of loaded rules.
func (d *Detector) RuleCount() int {
	return len(d.rules)
}
