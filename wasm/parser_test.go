//go:build wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"testing"

	"github.com/resast/resast"
	"github.com/resast/resast/pkg/types"
)

// parseProbe decodes just enough of a parse result to assert on it.
type parseProbe struct {
	Source  string `json:"source"`
	Program struct {
		Type string            `json:"type"`
		Body []json.RawMessage `json:"body"`
	} `json:"program"`
	Diagnostics []types.Diagnostic `json:"diagnostics"`
}

// TestParserCreation tests creating a parser with builtin patterns
func TestParserCreation(t *testing.T) {
	result := newParser(js.Value{}, []js.Value{js.ValueOf("builtin")})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}

	if errMsg, hasError := resultMap["error"]; hasError {
		t.Fatalf("Failed to create parser: %v", errMsg)
	}

	handle, hasHandle := resultMap["handle"]
	if !hasHandle {
		t.Fatal("Expected handle in result")
	}

	// Clean up
	closeParser(js.Value{}, []js.Value{js.ValueOf(handle)})
}

// TestParserWithCustomPatterns tests creating a parser with custom patterns JSON
func TestParserWithCustomPatterns(t *testing.T) {
	patterns := []*types.Pattern{
		{
			ID:      "test.open",
			Name:    "Open Statement",
			Kind:    types.KindOpen,
			Pattern: `(?m)^open[ \t]+(?P<module>[A-Z][A-Za-z0-9_]*)$`,
		},
	}

	patternsJSON, err := json.Marshal(patterns)
	if err != nil {
		t.Fatalf("Failed to marshal patterns: %v", err)
	}

	result := newParser(js.Value{}, []js.Value{js.ValueOf(string(patternsJSON))})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}

	if errMsg, hasError := resultMap["error"]; hasError {
		t.Fatalf("Failed to create parser: %v", errMsg)
	}

	handle := resultMap["handle"]
	closeParser(js.Value{}, []js.Value{js.ValueOf(handle)})
}

// TestParseContent tests lowering a native interface source
func TestParseContent(t *testing.T) {
	createResult := newParser(js.Value{}, []js.Value{js.ValueOf("builtin")})
	handle := createResult.(map[string]interface{})["handle"].(int)
	defer closeParser(js.Value{}, []js.Value{js.ValueOf(handle)})

	content := "open Base\n\nlet handle = TurboModule.get(\"ValueStore\")\n"
	resultStr := parse(js.Value{}, []js.Value{
		js.ValueOf(handle),
		js.ValueOf(content),
		js.ValueOf("NativeValueStore.res"),
	})

	// Should return JSON string
	jsonStr, ok := resultStr.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", resultStr, resultStr)
	}

	var result parseProbe
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}

	if result.Program.Type != "Program" {
		t.Errorf("Expected Program node, got %q", result.Program.Type)
	}

	if len(result.Program.Body) != 2 {
		t.Errorf("Expected 2 declarations, got %d", len(result.Program.Body))
	}

	if result.Source != "NativeValueStore.res" {
		t.Errorf("Expected source 'NativeValueStore.res', got %q", result.Source)
	}
}

// TestParseBatch tests lowering multiple content items
func TestParseBatch(t *testing.T) {
	createResult := newParser(js.Value{}, []js.Value{js.ValueOf("builtin")})
	handle := createResult.(map[string]interface{})["handle"].(int)
	defer closeParser(js.Value{}, []js.Value{js.ValueOf(handle)})

	// Create batch items
	items := []resast.ContentItem{
		{
			Source:  "NativeA.res",
			Content: "open Base\n",
		},
		{
			Source:  "NativeB.res",
			Content: "nothing here",
		},
		{
			Source:  "NativeC.res",
			Content: "let handle = TurboModule.get(\"Clock\")\n",
		},
	}

	itemsJSON, _ := json.Marshal(items)
	resultStr := parseBatch(js.Value{}, []js.Value{
		js.ValueOf(handle),
		js.ValueOf(string(itemsJSON)),
	})

	jsonStr, ok := resultStr.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", resultStr, resultStr)
	}

	var result struct {
		Results []parseProbe `json:"results"`
		Total   int          `json:"total"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}

	if result.Total != 2 {
		t.Errorf("Expected 2 total declarations, got %d", result.Total)
	}

	if len(result.Results) != 3 {
		t.Errorf("Expected 3 result items, got %d", len(result.Results))
	}
}

// TestGetBuiltinPatterns tests retrieving builtin patterns
func TestGetBuiltinPatterns(t *testing.T) {
	result := getBuiltinPatterns(js.Value{}, nil)

	jsonStr, ok := result.(string)
	if !ok {
		// Check if it's an error
		if errMap, isMap := result.(map[string]interface{}); isMap {
			t.Fatalf("Got error: %v", errMap["error"])
		}
		t.Fatalf("Expected string result, got %T", result)
	}

	var patterns []*types.Pattern
	if err := json.Unmarshal([]byte(jsonStr), &patterns); err != nil {
		t.Fatalf("Failed to parse patterns: %v", err)
	}

	if len(patterns) == 0 {
		t.Error("Expected at least one builtin pattern")
	}

	// Verify patterns have required fields
	for _, p := range patterns {
		if p.ID == "" {
			t.Error("Pattern missing ID")
		}
		if p.Pattern == "" {
			t.Error("Pattern missing regex")
		}
	}
}

// TestCloseParser tests parser cleanup
func TestCloseParser(t *testing.T) {
	createResult := newParser(js.Value{}, []js.Value{js.ValueOf("builtin")})
	handle := createResult.(map[string]interface{})["handle"].(int)

	// First close succeeds
	if result := closeParser(js.Value{}, []js.Value{js.ValueOf(handle)}); result != nil {
		t.Errorf("Expected nil on close, got %v", result)
	}

	// Second close reports an invalid handle
	result := closeParser(js.Value{}, []js.Value{js.ValueOf(handle)})
	errMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error map, got %T", result)
	}
	if errMap["error"] != "invalid parser handle" {
		t.Errorf("Expected invalid handle error, got %v", errMap["error"])
	}
}
