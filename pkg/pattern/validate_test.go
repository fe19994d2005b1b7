package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resast/resast/pkg/types"
)

func validPattern() *types.Pattern {
	return &types.Pattern{
		ID:      "test.valid",
		Name:    "Valid",
		Kind:    types.KindOpen,
		Pattern: `open (?P<module>\w+)`,
	}
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*types.Pattern)
		wantErr string
	}{
		{"valid", func(p *types.Pattern) {}, ""},
		{"missing id", func(p *types.Pattern) { p.ID = "" }, "ID is required"},
		{"missing name", func(p *types.Pattern) { p.Name = "" }, "name is required"},
		{"missing regex", func(p *types.Pattern) { p.Pattern = "" }, "regex is required"},
		{"unknown kind", func(p *types.Pattern) { p.Kind = "widget" }, "unknown kind"},
		{"invalid regex", func(p *types.Pattern) { p.Pattern = "(unclosed" }, "invalid regex"},
		{"wrong structural id", func(p *types.Pattern) { p.StructuralID = "bogus" }, "inconsistent StructuralID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPattern()
			tt.mutate(p)
			err := ValidatePattern(p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePatternNil(t *testing.T) {
	assert.Error(t, ValidatePattern(nil))
}

func TestValidatePatternsDuplicateID(t *testing.T) {
	a := validPattern()
	b := validPattern()

	err := ValidatePatterns([]*types.Pattern{a, b})
	assert.ErrorContains(t, err, "duplicate pattern ID")
}

func TestValidatePatternsEmpty(t *testing.T) {
	assert.NoError(t, ValidatePatterns(nil))
}
