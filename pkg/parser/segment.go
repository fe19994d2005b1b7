package parser

import (
	"strings"

	"github.com/resast/resast/pkg/types"
)

// MethodSignature is one "name: signature" pair extracted from a type body.
// Signature text is raw and untranslated; multi-line signatures are
// space-joined. Offsets index the original source buffer.
type MethodSignature struct {
	Name      string
	Signature string
	Optional  bool // name carried a '?' suffix
	NameStart int
	NameEnd   int
	SigStart  int // offset of the first signature character
	Start     int // full member span, name through last contributing line
	End       int
}

// Fragment is one trimmed parameter fragment with its source offset.
type Fragment struct {
	Text  string
	Start int
}

// SegmentMethods splits a raw type body into ordered method signatures. base
// is the body's offset in the source buffer. Lines are trimmed; empty lines
// and spread-marker lines ("...") are skipped. A line of the form
// "identifier [?] : rest" starts a new member unless the previous member's
// parenthesis group is still open, in which case the line continues that
// member's signature. Paren balance is counted per line and carried across
// lines; a trailing comma is stripped whenever the group closes.
//
// A panic is recovered into a diagnostic at offset 0 and the members
// accumulated so far are returned.
func SegmentMethods(body string, base int) (methods []MethodSignature, diags []types.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diags = append(diags, recoveredDiagnostic("method segmentation", r))
		}
	}()

	var current *MethodSignature
	depth := 0

	flush := func() {
		if current == nil {
			return
		}
		stripTrailingComma(current)
		methods = append(methods, *current)
		current = nil
	}

	forEachLine(body, func(line string, lineOffset int) {
		trimmed, trimOffset := trimFragment(line, lineOffset)
		if trimmed == "" {
			return
		}
		if strings.HasPrefix(trimmed, "...") {
			// Spread markers belong to the synthesizer, not the segmenter.
			return
		}

		absolute := base + trimOffset

		if depth <= 0 {
			name, optional, rest, restOffset, ok := splitMemberLine(trimmed)
			if !ok {
				// Stray text between members degrades to nothing.
				return
			}
			flush()
			nameStart := absolute
			current = &MethodSignature{
				Name:      name,
				Signature: rest,
				Optional:  optional,
				NameStart: nameStart,
				NameEnd:   nameStart + len(name),
				SigStart:  absolute + restOffset,
				Start:     nameStart,
				End:       absolute + len(trimmed),
			}
			depth = parenBalance(rest)
		} else if current != nil {
			current.Signature += " " + trimmed
			current.End = absolute + len(trimmed)
			depth += parenBalance(trimmed)
		}

		if depth <= 0 {
			flush()
			depth = 0
		}
	})

	flush()
	return methods, diags
}

// SplitParams splits the raw text between a signature's parentheses on commas
// at parenthesis-depth zero, trimming each fragment and discarding empty
// ones. Commas inside a nested function-typed parameter never split. base is
// the text's offset in the source buffer.
//
// A panic is recovered into a diagnostic at offset 0 and the fragments
// accumulated so far are returned.
func SplitParams(raw string, base int) (fragments []Fragment, diags []types.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diags = append(diags, recoveredDiagnostic("parameter splitting", r))
		}
	}()

	depth := 0
	segmentStart := 0

	emit := func(end int) {
		text, start := trimFragment(raw[segmentStart:end], segmentStart)
		if text != "" {
			fragments = append(fragments, Fragment{Text: text, Start: base + start})
		}
	}

	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				emit(i)
				segmentStart = i + 1
			}
		}
	}
	emit(len(raw))

	return fragments, diags
}

// splitMemberLine parses "identifier [?] ':' rest" from a trimmed line.
// restOffset is the offset of rest within the trimmed line.
func splitMemberLine(trimmed string) (name string, optional bool, rest string, restOffset int, ok bool) {
	i := 0
	for i < len(trimmed) && isIdentByte(trimmed[i], i == 0) {
		i++
	}
	if i == 0 {
		return "", false, "", 0, false
	}
	name = trimmed[:i]

	j := skipSpaces(trimmed, i)
	if j < len(trimmed) && trimmed[j] == '?' {
		optional = true
		j = skipSpaces(trimmed, j+1)
	}
	if j >= len(trimmed) || trimmed[j] != ':' {
		return "", false, "", 0, false
	}
	j = skipSpaces(trimmed, j+1)

	return name, optional, trimmed[j:], j, true
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case !first && (c >= '0' && c <= '9' || c == '\''):
		return true
	}
	return false
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// stripTrailingComma removes the record-field separator that line scanning
// leaves on a closed signature, shrinking the member span with it.
func stripTrailingComma(m *MethodSignature) {
	trimmed := strings.TrimRight(m.Signature, " \t")
	if strings.HasSuffix(trimmed, ",") {
		m.End -= len(m.Signature) - len(trimmed) + 1
		m.Signature = strings.TrimRight(trimmed[:len(trimmed)-1], " \t")
	}
}

// forEachLine walks s line by line, passing each line (separator excluded)
// and its offset within s.
func forEachLine(s string, fn func(line string, offset int)) {
	start := 0
	for start <= len(s) {
		nl := strings.IndexByte(s[start:], '\n')
		if nl < 0 {
			fn(s[start:], start)
			return
		}
		fn(s[start:start+nl], start)
		start += nl + 1
	}
}

// trimFragment trims surrounding whitespace and returns the trimmed text with
// its offset advanced past the leading cut.
func trimFragment(s string, offset int) (string, int) {
	i := 0
	for i < len(s) && isSpaceByte(s[i]) {
		i++
	}
	j := len(s)
	for j > i && isSpaceByte(s[j-1]) {
		j--
	}
	return s[i:j], offset + i
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// recoveredDiagnostic converts a recovered panic into the offset-0 diagnostic
// the degradation policy prescribes.
func recoveredDiagnostic(operation string, r interface{}) types.Diagnostic {
	return types.Diagnostic{
		Message:  operation + " failed: " + panicMessage(r),
		Line:     1,
		Column:   0,
		Position: 0,
	}
}

func panicMessage(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	if s, ok := r.(string); ok {
		return s
	}
	return "unexpected failure"
}
