package pattern

import (
	"fmt"
	"regexp"

	"github.com/resast/resast/pkg/types"
)

// ValidatePattern checks pattern consistency and required fields.
// Returns error if the pattern is invalid.
func ValidatePattern(p *types.Pattern) error {
	if p == nil {
		return fmt.Errorf("pattern is nil")
	}

	if p.ID == "" {
		return fmt.Errorf("pattern ID is required")
	}
	if p.Name == "" {
		return fmt.Errorf("pattern name is required")
	}
	if p.Pattern == "" {
		return fmt.Errorf("pattern regex is required")
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("pattern %s has unknown kind %q", p.ID, p.Kind)
	}

	// Validate pattern is a valid regex
	if _, err := regexp.Compile(p.Pattern); err != nil {
		return fmt.Errorf("invalid regex for pattern %s: %w", p.ID, err)
	}

	// Validate StructuralID matches computed value
	expectedID := p.ComputeStructuralID()
	if p.StructuralID != "" && p.StructuralID != expectedID {
		return fmt.Errorf("pattern %s has inconsistent StructuralID: got %s, expected %s",
			p.ID, p.StructuralID, expectedID)
	}

	return nil
}

// ValidatePatterns checks a full pattern set: each pattern individually plus
// ID uniqueness across the set.
func ValidatePatterns(patterns []*types.Pattern) error {
	seen := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		if err := ValidatePattern(p); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate pattern ID: %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
