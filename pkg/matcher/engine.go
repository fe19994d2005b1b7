package matcher

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/resast/resast/pkg/prefilter"
	"github.com/resast/resast/pkg/types"
)

// matchTimeout bounds a single regex evaluation to prevent catastrophic
// backtracking from stalling a parse.
const matchTimeout = 5 * time.Second

// Engine implements Matcher using regexp2 for Perl-style regex support.
// An Aho-Corasick prefilter skips patterns whose keywords never occur in
// the content; matching and capture extraction happen in a single pass.
type Engine struct {
	patterns   []*types.Pattern
	regexCache map[string]*regexp2.Regexp
	groupNames map[string][]string
	prefilter  *prefilter.Prefilter
}

// NewEngine creates a regexp2-based matcher from patterns.
func NewEngine(patterns []*types.Pattern) (*Engine, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no patterns provided")
	}

	e := &Engine{
		patterns:   patterns,
		regexCache: make(map[string]*regexp2.Regexp),
		groupNames: make(map[string][]string),
		prefilter:  prefilter.New(patterns),
	}

	// Pre-compile all patterns to catch errors early
	for _, pattern := range patterns {
		// Try RE2 mode first (safer, no backtracking)
		re, err := regexp2.Compile(pattern.Pattern, regexp2.RE2|regexp2.Multiline)
		if err != nil {
			// Fall back to Perl-compatible mode for features RE2 lacks
			re, err = regexp2.Compile(pattern.Pattern, regexp2.None)
			if err != nil {
				return nil, fmt.Errorf("failed to compile pattern %q for %s: %w", pattern.Pattern, pattern.ID, err)
			}
		}
		re.MatchTimeout = matchTimeout
		e.regexCache[pattern.Pattern] = re
		e.groupNames[pattern.Pattern] = re.GetGroupNames()
	}

	return e, nil
}

// Match scans content against all loaded patterns, prefiltered by keyword.
func (e *Engine) Match(content []byte) ([]*types.Hit, error) {
	var hits []*types.Hit
	contentStr := string(content)

	for _, pattern := range e.prefilter.Filter(content) {
		re := e.regexCache[pattern.Pattern]
		if re == nil {
			continue
		}

		match, err := re.FindStringMatch(contentStr)
		if err != nil {
			return nil, fmt.Errorf("regex match error for %s: %w", pattern.ID, err)
		}

		for match != nil {
			hits = append(hits, &types.Hit{
				PatternID: pattern.ID,
				Kind:      pattern.Kind,
				Start:     match.Index,
				End:       match.Index + match.Length,
				Groups:    extractNamedGroups(match, e.groupNames[pattern.Pattern]),
			})

			match, err = re.FindNextMatch(match)
			if err != nil {
				return nil, fmt.Errorf("regex match error for %s: %w", pattern.ID, err)
			}
		}
	}

	return hits, nil
}

// Close releases compiled pattern resources. Compiled regexp2 programs are
// garbage collected; nothing to release explicitly.
func (e *Engine) Close() error {
	return nil
}

// extractNamedGroups extracts named capture groups with their exact source
// offsets from a regexp2 match.
func extractNamedGroups(match *regexp2.Match, groupNames []string) map[string]types.Capture {
	groups := make(map[string]types.Capture)
	for _, name := range groupNames {
		// Skip numbered groups (they show up as "0", "1", etc.)
		if name == "" || (name[0] >= '0' && name[0] <= '9') {
			continue
		}
		group := match.GroupByName(name)
		if group == nil || len(group.Captures) == 0 {
			continue
		}
		capture := group.Captures[0]
		groups[name] = types.Capture{
			Value: capture.String(),
			Start: capture.Index,
			End:   capture.Index + capture.Length,
		}
	}
	return groups
}
