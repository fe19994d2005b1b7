package types

import "fmt"

// Diagnostic is one recoverable parse problem. The parser never fails past
// its boundary; everything it could not extract becomes a Diagnostic and the
// output tree degrades to a valid default. Line is 1-based, Column 0-based,
// Position a byte offset into the source.
type Diagnostic struct {
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Position int    `json:"position"`
}

// String renders "line:column: message" for terminal output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}
