package service

import (
	"sort"
	"strings"

	"github.com/thedailylaw/dailylaw-be/types"
)

const maxCategoriesPerBill = 2

// KeywordMatcher decides whether a taxonomy keyword matches a bill's combined
// text. Pluggable so token-boundary or stemmed matching can replace the
// substring heuristic without touching call sites.
type KeywordMatcher interface {
	Matches(text, keyword string) bool
}

// SubstringMatcher is the default matcher: case-insensitive substring
// containment. A keyword like "ai" will match inside unrelated words; that
// imprecision is a known property of the heuristic.
type SubstringMatcher struct{}

func (SubstringMatcher) Matches(text, keyword string) bool {
	return strings.Contains(text, strings.ToLower(keyword))
}

// Categorizer assigns bills to topical categories by weighted keyword scoring.
type Categorizer struct {
	categories []types.Category
	matcher    KeywordMatcher
}

func NewCategorizer(categories []types.Category, matcher KeywordMatcher) *Categorizer {
	if matcher == nil {
		matcher = SubstringMatcher{}
	}
	return &Categorizer{
		categories: categories,
		matcher:    matcher,
	}
}

func (c *Categorizer) Categories() []types.Category {
	return c.categories
}

// Categorize returns the top 2 best-matching categories for a bill, or an
// empty slice when nothing reaches minimum relevance. Callers must handle
// uncategorized bills.
func (c *Categorizer) Categorize(bill *types.BillRecord) []types.Category {
	parts := []string{bill.Title, bill.TLDR, bill.MetaDescription}
	parts = append(parts, bill.Keywords...)
	return c.CategorizeText(parts...)
}

func (c *Categorizer) CategorizeText(parts ...string) []types.Category {
	searchText := strings.ToLower(strings.Join(parts, " "))

	type scored struct {
		category types.Category
		score    int
	}
	var matched []scored

	for _, category := range c.categories {
		score := 0
		for _, keyword := range category.Keywords {
			if c.matcher.Matches(searchText, keyword) {
				// Multi-word phrases are a stronger signal.
				if strings.Contains(keyword, " ") {
					score += 2
				} else {
					score++
				}
			}
		}
		if score >= 1 {
			matched = append(matched, scored{category: category, score: score})
		}
	}

	// Stable sort keeps taxonomy order on ties.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	if len(matched) > maxCategoriesPerBill {
		matched = matched[:maxCategoriesPerBill]
	}
	result := make([]types.Category, 0, len(matched))
	for _, m := range matched {
		result = append(result, m.category)
	}
	return result
}
