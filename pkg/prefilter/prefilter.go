package prefilter

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/resast/resast/pkg/types"
)

// Prefilter uses Aho-Corasick for efficient keyword matching. Patterns whose
// keywords never occur in a source are skipped before any regex runs.
type Prefilter struct {
	matcher           *ahocorasick.Matcher
	keywords          []string                    // keyword at each index
	keywordPatterns   map[string][]*types.Pattern // keyword -> patterns needing it
	noKeywordPatterns []*types.Pattern            // patterns without keywords (always checked)
}

// New creates a prefilter from patterns.
func New(patterns []*types.Pattern) *Prefilter {
	pf := &Prefilter{
		keywordPatterns:   make(map[string][]*types.Pattern),
		noKeywordPatterns: make([]*types.Pattern, 0),
	}

	keywordSet := make(map[string]bool)
	for _, pattern := range patterns {
		if len(pattern.Keywords) == 0 {
			// No keywords = always check this pattern
			pf.noKeywordPatterns = append(pf.noKeywordPatterns, pattern)
			continue
		}
		for _, keyword := range pattern.Keywords {
			if !keywordSet[keyword] {
				keywordSet[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordPatterns[keyword] = append(pf.keywordPatterns[keyword], pattern)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Filter returns patterns that might match content: those with a keyword
// found in the content plus those with no keywords defined.
func (pf *Prefilter) Filter(content []byte) []*types.Pattern {
	result := make([]*types.Pattern, 0, len(pf.noKeywordPatterns))
	result = append(result, pf.noKeywordPatterns...)

	if pf.matcher == nil {
		return result
	}

	hits := pf.matcher.Match(content)

	seen := make(map[*types.Pattern]bool)
	for _, pattern := range pf.noKeywordPatterns {
		seen[pattern] = true
	}

	for _, hit := range hits {
		keyword := pf.keywords[hit]
		for _, pattern := range pf.keywordPatterns[keyword] {
			if !seen[pattern] {
				seen[pattern] = true
				result = append(result, pattern)
			}
		}
	}

	return result
}
