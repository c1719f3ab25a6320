package nlfilter

import (
	"regexp"
	"strings"
)

// rule maps a set of synonyms to the canonical filter value it implies.
type rule struct {
	value   string
	pattern *regexp.Regexp
}

// Rule tables are ordered by priority. Do not sort them.
var (
	departmentRules = []rule{
		newRule("CS", "cs", "computer science", "computer", "computing"),
		newRule("EE", "ee", "electrical", "electronics"),
		newRule("ME", "me", "mechanical"),
		newRule("CE", "ce", "civil"),
		newRule("CHEM", "chem", "chemistry", "chemical"),
		newRule("MATH", "math", "mathematics"),
		newRule("PHYS", "phys", "physics"),
	}

	levelRules = []rule{
		newRule("UG", "ug", "undergraduate", "bachelor"),
		newRule("PG", "pg", "postgraduate", "master", "graduate"),
	}

	deliveryModeRules = []rule{
		newRule("online", "online"),
		newRule("offline", "offline"),
		newRule("hybrid", "hybrid"),
	}
)

// newRule compiles the synonyms into a single word-boundary alternation.
func newRule(value string, synonyms ...string) rule {
	quoted := make([]string, len(synonyms))
	for i, s := range synonyms {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return rule{
		value:   value,
		pattern: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`),
	}
}

// firstMatch walks the table in order and stops at the first rule that matches.
func firstMatch(rules []rule, text string) (string, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.value, true
		}
	}
	return "", false
}
