package explore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/resast/resast/pkg/types"
)

// reportEntry mirrors one element of the JSON report written by parse.
type reportEntry struct {
	Source      string             `json:"source"`
	Program     json.RawMessage    `json:"program"`
	Diagnostics []types.Diagnostic `json:"diagnostics"`
}

// exploreData holds all loaded data for the TUI.
type exploreData struct {
	files []*fileRow
}

// loadReport reads a JSON report produced by parse --format json and builds
// the per-file view models.
func loadReport(reportPath string) (*exploreData, error) {
	data, err := os.ReadFile(reportPath)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var entries []reportEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}

	rows := make([]*fileRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, buildFileRow(entry))
	}

	return &exploreData{files: rows}, nil
}

// buildFileRow creates a fileRow from one report entry.
func buildFileRow(entry reportEntry) *fileRow {
	row := &fileRow{
		Source:      entry.Source,
		Directory:   filepath.Dir(entry.Source),
		Diagnostics: entry.Diagnostics,
		DiagCount:   len(entry.Diagnostics),
	}

	var program struct {
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(entry.Program, &program); err != nil {
		return row
	}

	row.DeclCount = len(program.Body)
	row.Declarations = make([]*declRow, 0, len(program.Body))
	for _, raw := range program.Body {
		row.Declarations = append(row.Declarations, buildDeclRow(raw))
	}

	return row
}

// declProbe decodes the fields shared by all lowered declaration shapes.
// Unknown kinds still yield a usable row from the type tag and loc alone.
type declProbe struct {
	Type string `json:"type"`
	Loc  struct {
		Start struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"start"`
		End struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"end"`
	} `json:"loc"`
	ID *struct {
		Name string `json:"name"`
	} `json:"id"`
	Specifiers []struct {
		Local struct {
			Name string `json:"name"`
		} `json:"local"`
	} `json:"specifiers"`
	Source *struct {
		Value string `json:"value"`
	} `json:"source"`
	Declaration *struct {
		Arguments []struct {
			Value string `json:"value"`
		} `json:"arguments"`
	} `json:"declaration"`
}

// buildDeclRow creates a declRow from one raw program body node.
func buildDeclRow(raw json.RawMessage) *declRow {
	var probe declProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return &declRow{Kind: "?"}
	}

	row := &declRow{
		Kind:      kindLabel(probe.Type),
		StartLine: probe.Loc.Start.Line,
		StartCol:  probe.Loc.Start.Column,
		EndLine:   probe.Loc.End.Line,
		EndCol:    probe.Loc.End.Column,
	}

	switch probe.Type {
	case "ImportDeclaration":
		if len(probe.Specifiers) > 0 {
			row.Name = probe.Specifiers[0].Local.Name
		}
		if probe.Source != nil {
			row.Module = probe.Source.Value
		}
	case "InterfaceDeclaration", "TypeAlias":
		if probe.ID != nil {
			row.Name = probe.ID.Name
		}
	case "ExportDefaultDeclaration":
		if probe.Declaration != nil && len(probe.Declaration.Arguments) > 0 {
			row.Name = probe.Declaration.Arguments[0].Value
		}
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err == nil {
		row.JSON = pretty.String()
	}

	return row
}

// kindLabel maps an ESTree type tag to the short label used in tables
// and facets.
func kindLabel(nodeType string) string {
	switch nodeType {
	case "ImportDeclaration":
		return "import"
	case "InterfaceDeclaration":
		return "interface"
	case "TypeAlias":
		return "type"
	case "ExportDefaultDeclaration":
		return "export"
	default:
		return nodeType
	}
}
