// Package nlfilter turns a free-text course question into a partial filter set.
//
// Matching is a fixed-order greedy pattern scan, not language understanding:
// each category is an ordered rule table and the first rule that matches wins,
// so conflicting phrases always resolve to the earliest rule in the table.
package nlfilter

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Filters is the structured result of extraction. A nil field means no rule
// in that category matched.
type Filters struct {
	Department   *string  `json:"department,omitempty"`
	Level        *string  `json:"level,omitempty"`
	DeliveryMode *string  `json:"delivery_mode,omitempty"`
	MaxFee       *int     `json:"max_fee,omitempty"`
	MinRating    *float64 `json:"min_rating,omitempty"`
}

// Extractor extracts structured course filters from natural language input.
type Extractor interface {
	Extract(ctx context.Context, question string) (Filters, error)
}

// RuleExtractor is the regex-backed Extractor. It is stateless and safe for
// concurrent use.
type RuleExtractor struct{}

var _ Extractor = (*RuleExtractor)(nil)

// NewRuleExtractor returns the default rule-based extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

var (
	// feePattern captures the number after a "cheaper than" style cue.
	feePattern = regexp.MustCompile(`(?:under|below|less than|max|maximum|cheaper than)\s*(\d+)`)

	// ratingPattern captures the number after "rating"/"rated" with an optional qualifier.
	ratingPattern = regexp.MustCompile(`(?:rating|rated)\s*(?:above|over|at least|atleast|minimum)?\s*(\d+\.?\d*)`)
)

// Extract lowercases the question and runs every category independently.
func (*RuleExtractor) Extract(_ context.Context, question string) (Filters, error) {
	q := strings.ToLower(question)

	var f Filters
	if v, ok := firstMatch(departmentRules, q); ok {
		f.Department = &v
	}
	if v, ok := firstMatch(levelRules, q); ok {
		f.Level = &v
	}
	if v, ok := firstMatch(deliveryModeRules, q); ok {
		f.DeliveryMode = &v
	}
	if fee, ok := extractMaxFee(q); ok {
		f.MaxFee = &fee
	}
	if rating, ok := extractMinRating(q); ok {
		f.MinRating = &rating
	}
	return f, nil
}

// feeScaleThreshold is the bound below which a bare fee is read as thousands.
const feeScaleThreshold = 1000

// NormalizeFee applies the product heuristic that small bare numbers are
// shorthand for thousands of rupees: "under 50" means 50000. Values at or
// above the threshold are taken literally, which makes 999 and 1000 land
// three orders of magnitude apart.
func NormalizeFee(fee int) int {
	if fee < feeScaleThreshold {
		return fee * feeScaleThreshold
	}
	return fee
}

func extractMaxFee(q string) (int, bool) {
	m := feePattern.FindStringSubmatch(q)
	if len(m) < 2 {
		return 0, false
	}
	fee, err := strconv.Atoi(m[1])
	if err != nil {
		// more digits than an int holds
		return 0, false
	}
	return NormalizeFee(fee), true
}

func extractMinRating(q string) (float64, bool) {
	m := ratingPattern.FindStringSubmatch(q)
	if len(m) < 2 {
		return 0, false
	}
	rating, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64)
	if err != nil {
		return 0, false
	}
	return rating, true
}
