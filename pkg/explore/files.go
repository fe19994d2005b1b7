package explore

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// sortField defines which column to sort by.
type sortField int

const (
	sortBySource sortField = iota
	sortByDecls
	sortByDiags
	sortFieldCount // sentinel
)

var sortFieldNames = [sortFieldCount]string{
	"File", "Decls", "Diags",
}

// filesPane is the top-right files table.
type filesPane struct {
	rows    []*fileRow // filtered rows
	allRows []*fileRow // all rows (unfiltered)
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
	sortBy  sortField
	sortAsc bool

	// Column widths
	colSource int
	colKinds  int
	colDecls  int
	colDiags  int
}

func newFilesPane(rows []*fileRow) filesPane {
	fp := filesPane{
		allRows: rows,
		rows:    rows,
		sortAsc: true,
	}
	fp.sort()
	return fp
}

func (fp *filesPane) setFilteredRows(rows []*fileRow) {
	fp.rows = rows
	if fp.cursor >= len(fp.rows) {
		fp.cursor = max(0, len(fp.rows)-1)
	}
	fp.ensureVisible()
}

func (fp filesPane) selectedFile() *fileRow {
	if fp.cursor < 0 || fp.cursor >= len(fp.rows) {
		return nil
	}
	return fp.rows[fp.cursor]
}

func (fp filesPane) Update(msg tea.Msg) (filesPane, tea.Cmd) {
	if !fp.focused {
		return fp, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keyMatches(msg, defaultKeys.Up):
			if fp.cursor > 0 {
				fp.cursor--
				fp.ensureVisible()
			}
		case keyMatches(msg, defaultKeys.Down):
			if fp.cursor < len(fp.rows)-1 {
				fp.cursor++
				fp.ensureVisible()
			}
		case keyMatches(msg, defaultKeys.Home):
			fp.cursor = 0
			fp.offset = 0
		case keyMatches(msg, defaultKeys.End):
			fp.cursor = max(0, len(fp.rows)-1)
			fp.ensureVisible()
		case keyMatches(msg, defaultKeys.PageDown):
			fp.cursor = min(fp.cursor+fp.visibleRows(), len(fp.rows)-1)
			fp.ensureVisible()
		case keyMatches(msg, defaultKeys.PageUp):
			fp.cursor = max(fp.cursor-fp.visibleRows(), 0)
			fp.ensureVisible()
		case keyMatches(msg, defaultKeys.SortNext):
			fp.sortBy = (fp.sortBy + 1) % sortFieldCount
			fp.sort()
		}
	}

	return fp, nil
}

func (fp *filesPane) sort() {
	switch fp.sortBy {
	case sortBySource:
		sortSlice(fp.rows, func(a, b *fileRow) bool { return a.Source < b.Source }, fp.sortAsc)
	case sortByDecls:
		sortSlice(fp.rows, func(a, b *fileRow) bool { return a.DeclCount < b.DeclCount }, fp.sortAsc)
	case sortByDiags:
		sortSlice(fp.rows, func(a, b *fileRow) bool { return a.DiagCount < b.DiagCount }, fp.sortAsc)
	}
}

func sortSlice[T any](s []T, less func(a, b T) bool, asc bool) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0; j-- {
			if asc {
				if less(s[j], s[j-1]) {
					s[j], s[j-1] = s[j-1], s[j]
				}
			} else {
				if less(s[j-1], s[j]) {
					s[j], s[j-1] = s[j-1], s[j]
				}
			}
		}
	}
}

func (fp filesPane) View() string {
	if fp.width <= 0 || fp.height <= 0 {
		return ""
	}

	// Calculate column widths
	contentWidth := fp.width - 4 // borders
	fp.colDecls = 6
	fp.colDiags = 6
	fp.colKinds = min(30, contentWidth/4)
	fp.colSource = contentWidth - fp.colKinds - fp.colDecls - fp.colDiags - 3 // separators
	if fp.colSource < 10 {
		fp.colSource = 10
	}

	var b strings.Builder

	// Header row
	sortIndicator := func(f sortField) string {
		if fp.sortBy == f {
			if fp.sortAsc {
				return " ^"
			}
			return " v"
		}
		return ""
	}

	header := fmt.Sprintf(" %-*s %-*s %*s %*s",
		fp.colSource, "File"+sortIndicator(sortBySource),
		fp.colKinds, "Kinds",
		fp.colDecls, "Decls"+sortIndicator(sortByDecls),
		fp.colDiags, "Diags"+sortIndicator(sortByDiags),
	)
	b.WriteString(headerRowStyle.Width(contentWidth).Render(truncateString(header, contentWidth)))
	b.WriteString("\n")

	// Separator
	b.WriteString(strings.Repeat("─", contentWidth))
	b.WriteString("\n")

	// Data rows
	visibleEnd := min(fp.offset+fp.visibleRows(), len(fp.rows))
	for i := fp.offset; i < visibleEnd; i++ {
		row := fp.rows[i]
		isCurrent := i == fp.cursor

		kindStr := truncateString(strings.Join(row.kindSet(), ", "), fp.colKinds)
		diagStr := renderDiagCount(row.DiagCount)

		line := fmt.Sprintf(" %-*s %-*s %*d %*s",
			fp.colSource, truncateString(row.Source, fp.colSource),
			fp.colKinds, kindStr,
			fp.colDecls, row.DeclCount,
			fp.colDiags, diagStr,
		)

		if isCurrent && fp.focused {
			line = selectedRowStyle.Width(contentWidth).Render(stripAnsi(line))
		}

		b.WriteString(padRight(line, contentWidth))
		if i < visibleEnd-1 {
			b.WriteString("\n")
		}
	}

	// Fill empty rows
	for i := visibleEnd - fp.offset; i < fp.visibleRows(); i++ {
		b.WriteString(strings.Repeat(" ", contentWidth))
		if i < fp.visibleRows()-1 {
			b.WriteString("\n")
		}
	}

	title := titleStyle.Render(fmt.Sprintf(" Files (%d/%d) [sort: %s] ", len(fp.rows), len(fp.allRows), sortFieldNames[fp.sortBy]))

	borderStyle := inactiveBorderStyle
	if fp.focused {
		borderStyle = activeBorderStyle
	}

	content := borderStyle.
		Width(fp.width - 2).
		Height(fp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func (fp filesPane) visibleRows() int {
	return max(1, fp.height-6) // title + border + header + separator
}

func (fp *filesPane) ensureVisible() {
	if fp.cursor < fp.offset {
		fp.offset = fp.cursor
	}
	if fp.cursor >= fp.offset+fp.visibleRows() {
		fp.offset = fp.cursor - fp.visibleRows() + 1
	}
}

func (fp *filesPane) setSize(w, h int) {
	fp.width = w
	fp.height = h
}
