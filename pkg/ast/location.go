package ast

// Position is a point in the source: 1-based line, 0-based column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceLocation is the loc object attached to every node. Source is the
// filename label propagated from the parse options, null when none was given.
type SourceLocation struct {
	Source *string  `json:"source"`
	Start  Position `json:"start"`
	End    Position `json:"end"`
}

// Range is the [start, end) byte offset pair attached to every node. It
// marshals as a two-element JSON array.
type Range [2]int

// Span bundles the loc and range every node constructor needs.
type Span struct {
	Loc   SourceLocation
	Range Range
}

// ClampOffsets forces 0 <= start <= end <= max. Constructors clamp rather
// than propagate out-of-range offsets.
func ClampOffsets(start, end, max int) (int, int) {
	if max < 0 {
		max = 0
	}
	if start < 0 {
		start = 0
	}
	if start > max {
		start = max
	}
	if end < start {
		end = start
	}
	if end > max {
		end = max
	}
	return start, end
}
