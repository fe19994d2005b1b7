package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/resast/resast/pkg/types"
)

// FilterConfig specifies include and exclude patterns for filtering.
type FilterConfig struct {
	Include []string // Regex patterns - only matching pattern IDs/kinds included
	Exclude []string // Regex patterns - matching pattern IDs/kinds excluded
}

// ParseFilters splits a comma-separated string into individual filter
// expressions, trimmed of whitespace.
func ParseFilters(filters string) []string {
	if filters == "" {
		return []string{}
	}

	parts := strings.Split(filters, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude expressions to patterns. Include is
// applied first, then exclude. Empty include means "include all".
// Returns error if any expression is invalid regex.
func Filter(patterns []*types.Pattern, config FilterConfig) ([]*types.Pattern, error) {
	if len(patterns) == 0 {
		return patterns, nil
	}

	var includeRegexes []*regexp.Regexp
	for _, expr := range config.Include {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression %q: %w", expr, err)
		}
		includeRegexes = append(includeRegexes, re)
	}

	var excludeRegexes []*regexp.Regexp
	for _, expr := range config.Exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid filter expression %q: %w", expr, err)
		}
		excludeRegexes = append(excludeRegexes, re)
	}

	filtered := patterns
	if len(includeRegexes) > 0 {
		filtered = applyInclude(patterns, includeRegexes)
	}
	if len(excludeRegexes) > 0 {
		filtered = applyExclude(filtered, excludeRegexes)
	}

	return filtered, nil
}

func applyInclude(patterns []*types.Pattern, regexes []*regexp.Regexp) []*types.Pattern {
	result := make([]*types.Pattern, 0)
	for _, p := range patterns {
		if matchesAny(p, regexes) {
			result = append(result, p)
		}
	}
	return result
}

func applyExclude(patterns []*types.Pattern, regexes []*regexp.Regexp) []*types.Pattern {
	result := make([]*types.Pattern, 0)
	for _, p := range patterns {
		if !matchesAny(p, regexes) {
			result = append(result, p)
		}
	}
	return result
}

// matchesAny tests a pattern's ID and kind against the expressions, so both
// "rescript.open" and a bare "open" select the same pattern.
func matchesAny(p *types.Pattern, regexes []*regexp.Regexp) bool {
	for _, re := range regexes {
		if re.MatchString(p.ID) || re.MatchString(string(p.Kind)) {
			return true
		}
	}
	return false
}
