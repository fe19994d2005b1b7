package parser

import (
	"fmt"
	"strings"

	"github.com/resast/resast/pkg/ast"
	"github.com/resast/resast/pkg/types"
)

// LineIndex maps byte offsets into (line, column) positions over pre-split
// source lines. Lines are 1-based, columns 0-based. Built once per parse;
// read-only afterwards.
type LineIndex struct {
	lines  []string
	starts []int
	length int
}

// NewLineIndex splits source on '\n' and records each line's start offset.
// The separator occupies one position when accumulating offsets.
func NewLineIndex(source string) *LineIndex {
	lines := strings.Split(source, "\n")
	starts := make([]int, len(lines))
	offset := 0
	for i, line := range lines {
		starts[i] = offset
		offset += len(line) + 1
	}
	return &LineIndex{lines: lines, starts: starts, length: len(source)}
}

// Length returns the indexed source length in bytes.
func (x *LineIndex) Length() int {
	return x.length
}

// LineCount returns the number of lines.
func (x *LineIndex) LineCount() int {
	return len(x.lines)
}

// PositionAt resolves a byte offset to a clamped position. Offsets at or past
// the end of the text resolve to the last line and its length. A negative
// offset resolves to (1, 0) and reports a diagnostic; it never fails.
func (x *LineIndex) PositionAt(offset int) (ast.Position, *types.Diagnostic) {
	if offset < 0 {
		return ast.Position{Line: 1, Column: 0}, &types.Diagnostic{
			Message:  fmt.Sprintf("negative offset %d in position lookup", offset),
			Line:     1,
			Column:   0,
			Position: 0,
		}
	}
	if offset > x.length {
		offset = x.length
	}

	for i, line := range x.lines {
		if offset <= x.starts[i]+len(line) {
			return ast.Position{Line: i + 1, Column: offset - x.starts[i]}, nil
		}
	}

	last := len(x.lines) - 1
	return ast.Position{Line: last + 1, Column: len(x.lines[last])}, nil
}

// Span builds a clamped loc/range pair for the half-open offset range
// [start, end), labeled with the given source name.
func (x *LineIndex) Span(start, end int, source *string) ast.Span {
	start, end = ast.ClampOffsets(start, end, x.length)
	s, _ := x.PositionAt(start)
	e, _ := x.PositionAt(end)
	return ast.Span{
		Loc:   ast.SourceLocation{Source: source, Start: s, End: e},
		Range: ast.Range{start, end},
	}
}
