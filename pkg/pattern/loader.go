package pattern

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/resast/resast/pkg/types"
)

// Loader handles loading patterns from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in patterns
}

// NewLoader creates a loader with built-in patterns from the embedded
// filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinPatternsFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadPatterns loads all patterns from YAML bytes.
func (l *Loader) LoadPatterns(data []byte) ([]*types.Pattern, error) {
	var yamlFile yamlPatternsFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(yamlFile.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns found in YAML")
	}

	patterns := make([]*types.Pattern, 0, len(yamlFile.Patterns))
	for _, yp := range yamlFile.Patterns {
		patterns = append(patterns, convertYAMLPattern(yp))
	}
	return patterns, nil
}

// LoadPatternFile loads patterns from a YAML file path.
func (l *Loader) LoadPatternFile(path string) ([]*types.Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.LoadPatterns(data)
}

// LoadBuiltinPatterns loads all built-in patterns from the embedded
// filesystem.
func (l *Loader) LoadBuiltinPatterns() ([]*types.Pattern, error) {
	var patterns []*types.Pattern

	err := fs.WalkDir(l.fs, "patterns", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var yamlFile yamlPatternsFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for _, yp := range yamlFile.Patterns {
			patterns = append(patterns, convertYAMLPattern(yp))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return patterns, nil
}

// convertYAMLPattern converts yamlPattern to types.Pattern and computes the
// StructuralID.
func convertYAMLPattern(yp yamlPattern) *types.Pattern {
	p := &types.Pattern{
		ID:               yp.ID,
		Name:             yp.Name,
		Kind:             types.PatternKind(yp.Kind),
		Pattern:          yp.Pattern,
		Description:      yp.Description,
		Keywords:         yp.Keywords,
		Examples:         yp.Examples,
		NegativeExamples: yp.NegativeExamples,
	}
	p.StructuralID = p.ComputeStructuralID()
	return p
}
