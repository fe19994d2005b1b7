package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/resast/resast/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "resast"
	ToolVersion = "0.1.0"

	// DiagnosticRuleID identifies recoverable parse diagnostics.
	DiagnosticRuleID = "res.parse.diagnostic"
	// InternalErrorRuleID identifies parses that fell back to an empty program.
	InternalErrorRuleID = "res.parse.internal"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule describes one class of reportable condition
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single reported diagnostic
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// NewReport creates a new SARIF report with the parser's rule set registered
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules: []Rule{
							{
								ID:   DiagnosticRuleID,
								Name: "ParseDiagnostic",
								ShortDescription: ShortDescription{
									Text: "Recoverable problem while lowering a native interface declaration",
								},
							},
							{
								ID:   InternalErrorRuleID,
								Name: "ParseInternalError",
								ShortDescription: ShortDescription{
									Text: "Parse aborted and produced an empty program",
								},
							},
						},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddDiagnostic adds a recoverable parse diagnostic as a warning-level result
func (r *Report) AddDiagnostic(filePath string, diag types.Diagnostic) {
	r.addResult(DiagnosticRuleID, "warning", filePath, diag)
}

// AddInternalError adds an aborted-parse diagnostic as an error-level result
func (r *Report) AddInternalError(filePath string, diag types.Diagnostic) {
	r.addResult(InternalErrorRuleID, "error", filePath, diag)
}

func (r *Report) addResult(ruleID, level, filePath string, diag types.Diagnostic) {
	// Convert file path to URI format
	uri := formatFileURI(filePath)

	// Diagnostics carry 0-based columns; SARIF regions are 1-based
	region := Region{
		StartLine:   diag.Line,
		StartColumn: diag.Column + 1,
		EndLine:     diag.Line,
		EndColumn:   diag.Column + 1,
	}

	result := Result{
		RuleID: ruleID,
		Level:  level,
		Message: Message{
			Text: diag.Message,
		},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{
						URI: uri,
					},
					Region: region,
				},
			},
		},
	}

	r.Runs[0].Results = append(r.Runs[0].Results, result)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		// Normalize path separators for URI format
		path = filepath.ToSlash(path)
		// Ensure path starts with /
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	// Relative paths stay as-is
	return filepath.ToSlash(path)
}
