package parser

// MatchDelimiter scans forward from an opening delimiter at index open,
// tracking nesting depth of the delimiter pair, and returns the index of the
// matching closer, or -1 when the string ends before depth returns to zero.
// Every occurrence of the pair counts as a depth change; string literals and
// comments are not interpreted.
func MatchDelimiter(s string, open int, openCh, closeCh byte) int {
	if open < 0 || open >= len(s) || s[open] != openCh {
		return -1
	}

	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parenBalance returns the net count of '(' minus ')' in s. The segmenter
// carries this across lines to detect multi-line signatures.
func parenBalance(s string) int {
	balance := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			balance++
		case ')':
			balance--
		}
	}
	return balance
}
