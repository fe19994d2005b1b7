//go:build wasm

package main

import (
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/resast/resast"
	"github.com/resast/resast/pkg/types"
)

var (
	parsers   = make(map[int]*resast.Parser)
	parsersMu sync.RWMutex
	nextID    int
)

// newParser creates a new parser with the given patterns JSON.
// JS: ResastNewParser(patternsJSON) -> handle (int) or error string
func newParser(this js.Value, args []js.Value) interface{} {
	patternsJSON := ""
	if len(args) > 0 {
		patternsJSON = args[0].String()
	}

	var opts []resast.Option
	if patternsJSON != "" && patternsJSON != "builtin" {
		var patterns []*types.Pattern
		if err := json.Unmarshal([]byte(patternsJSON), &patterns); err != nil {
			return map[string]interface{}{"error": "failed to parse patterns JSON: " + err.Error()}
		}
		opts = append(opts, resast.WithPatterns(patterns))
	}

	parser, err := resast.New(opts...)
	if err != nil {
		return map[string]interface{}{"error": "failed to create parser: " + err.Error()}
	}

	// Register parser
	parsersMu.Lock()
	id := nextID
	nextID++
	parsers[id] = parser
	parsersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// parse lowers a single content string.
// JS: ResastParse(handle, content, source) -> JSON result or error
func parse(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and content arguments required"}
	}

	handle := args[0].Int()
	content := args[1].String()
	source := ""
	if len(args) > 2 {
		source = args[2].String()
	}

	parsersMu.RLock()
	parser, ok := parsers[handle]
	parsersMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid parser handle"}
	}

	// Parse content
	result := parser.ParseString(content, source)

	// Return result as JSON
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}

	return string(jsonBytes)
}

// parseBatch lowers multiple content items.
// JS: ResastParseBatch(handle, itemsJSON) -> JSON results or error
func parseBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and itemsJSON arguments required"}
	}

	handle := args[0].Int()
	itemsJSON := args[1].String()

	parsersMu.RLock()
	parser, ok := parsers[handle]
	parsersMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid parser handle"}
	}

	// Parse items
	var items []resast.ContentItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return map[string]interface{}{"error": "failed to parse items JSON: " + err.Error()}
	}

	// Parse batch
	batchResult := parser.ParseBatch(items)

	// Return batch results as JSON
	jsonBytes, err := json.Marshal(batchResult)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}

	return string(jsonBytes)
}

// closeParser closes a parser and releases resources.
// JS: ResastCloseParser(handle)
func closeParser(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	parsersMu.Lock()
	parser, ok := parsers[handle]
	if ok {
		delete(parsers, handle)
	}
	parsersMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid parser handle"}
	}

	parser.Close()

	return nil
}

// getBuiltinPatterns returns the built-in patterns as JSON.
// JS: ResastGetBuiltinPatterns() -> JSON patterns array
func getBuiltinPatterns(this js.Value, args []js.Value) interface{} {
	patterns, err := resast.LoadBuiltinPatterns()
	if err != nil {
		return map[string]interface{}{"error": "failed to load builtin patterns: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(patterns)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal patterns: " + err.Error()}
	}

	return string(jsonBytes)
}
