package pattern

// yamlPattern is the intermediate struct for parsing the YAML pattern format.
// Maps YAML fields to the types.Pattern structure.
type yamlPattern struct {
	Name             string   `yaml:"name"`
	ID               string   `yaml:"id"`
	Kind             string   `yaml:"kind"`
	Pattern          string   `yaml:"pattern"`
	Description      string   `yaml:"description,omitempty"`
	Keywords         []string `yaml:"keywords,omitempty"`
	Examples         []string `yaml:"examples,omitempty"`
	NegativeExamples []string `yaml:"negative_examples,omitempty"`
}

// yamlPatternsFile represents the top-level structure of a patterns YAML
// file: a "patterns" array.
type yamlPatternsFile struct {
	Patterns []yamlPattern `yaml:"patterns"`
}
