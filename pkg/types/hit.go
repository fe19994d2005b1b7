package types

// Capture is one named capture group of a hit, with exact byte offsets into
// the matched buffer.
type Capture struct {
	Value string `json:"value"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Hit is a single recognizer match. Offsets are byte positions into the
// source buffer, half-open [Start, End).
type Hit struct {
	PatternID string             `json:"pattern_id"`
	Kind      PatternKind        `json:"kind"`
	Start     int                `json:"start"`
	End       int                `json:"end"`
	Groups    map[string]Capture `json:"groups,omitempty"`
}

// Group returns the named capture, or a zero Capture when absent.
func (h *Hit) Group(name string) (Capture, bool) {
	c, ok := h.Groups[name]
	return c, ok
}
