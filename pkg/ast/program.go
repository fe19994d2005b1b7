package ast

import "github.com/resast/resast/pkg/types"

// Program is the root node. Body, Comments, Interpreter, SourceType and
// Docblock are always present; Errors appears only when the program could not
// be constructed normally and the parser degraded to an empty body.
type Program struct {
	NodeBase
	Body        []Declaration      `json:"body"`
	Comments    []interface{}      `json:"comments"`
	Interpreter interface{}        `json:"interpreter"`
	SourceType  string             `json:"sourceType"`
	Docblock    interface{}        `json:"docblock"`
	Errors      []types.Diagnostic `json:"errors,omitempty"`
}

// NewProgram builds a Program with non-nil body and comments slices so they
// marshal as [] rather than null.
func NewProgram(body []Declaration, span Span) *Program {
	if body == nil {
		body = []Declaration{}
	}
	return &Program{
		NodeBase:   makeBase("Program", span),
		Body:       body,
		Comments:   []interface{}{},
		SourceType: "module",
	}
}
