package explore

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// detailsPane shows declaration details for the selected file.
type detailsPane struct {
	file       *fileRow
	declCursor int
	width      int
	height     int
	offset     int // scroll offset for content
	focused    bool
}

func newDetailsPane() detailsPane {
	return detailsPane{}
}

func (dp *detailsPane) setFile(f *fileRow) {
	dp.file = f
	dp.declCursor = 0
	dp.offset = 0
}

func (dp detailsPane) selectedDecl() *declRow {
	if dp.file == nil || dp.declCursor < 0 || dp.declCursor >= len(dp.file.Declarations) {
		return nil
	}
	return dp.file.Declarations[dp.declCursor]
}

func (dp detailsPane) Update(msg tea.Msg) (detailsPane, tea.Cmd) {
	if !dp.focused {
		return dp, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keyMatches(msg, defaultKeys.Up):
			if dp.offset > 0 {
				dp.offset--
			}
		case keyMatches(msg, defaultKeys.Down):
			dp.offset++
		case keyMatches(msg, defaultKeys.Left):
			if dp.declCursor > 0 {
				dp.declCursor--
				dp.offset = 0
			}
		case keyMatches(msg, defaultKeys.Right):
			if dp.file != nil && dp.declCursor < len(dp.file.Declarations)-1 {
				dp.declCursor++
				dp.offset = 0
			}
		case keyMatches(msg, defaultKeys.Home):
			dp.offset = 0
		case keyMatches(msg, defaultKeys.PageDown):
			dp.offset += dp.visibleRows()
		case keyMatches(msg, defaultKeys.PageUp):
			dp.offset = max(0, dp.offset-dp.visibleRows())
		}
	}

	return dp, nil
}

func (dp detailsPane) View() string {
	if dp.width <= 0 || dp.height <= 0 {
		return ""
	}

	contentWidth := dp.width - 4

	var lines []string

	if dp.file == nil {
		lines = append(lines, "  No file selected")
	} else {
		f := dp.file

		// File header
		lines = append(lines, fmt.Sprintf("  %s %s",
			fieldLabelStyle.Render("File:"),
			fieldValueStyle.Render(f.Source)))

		if kinds := f.kindSet(); len(kinds) > 0 {
			lines = append(lines, fmt.Sprintf("  %s %s",
				fieldLabelStyle.Render("Kinds:"),
				fieldValueStyle.Render(strings.Join(kinds, ", "))))
		}

		lines = append(lines, fmt.Sprintf("  %s %d   %s %s",
			fieldLabelStyle.Render("Declarations:"), f.DeclCount,
			fieldLabelStyle.Render("Diagnostics:"), renderDiagCount(f.DiagCount)))

		// Diagnostics
		if len(f.Diagnostics) > 0 {
			lines = append(lines, "")
			lines = append(lines, fmt.Sprintf("  %s", fieldLabelStyle.Render("Diagnostics:")))
			for _, d := range f.Diagnostics {
				lines = append(lines, "    "+diagStyle.Render(truncateString(d.String(), contentWidth-6)))
			}
		}

		lines = append(lines, "")

		// Declaration details
		if len(f.Declarations) > 0 {
			lines = append(lines, fmt.Sprintf("  %s",
				headerRowStyle.Render(fmt.Sprintf("Declaration %d/%d (h/l to navigate)", dp.declCursor+1, len(f.Declarations)))))
			lines = append(lines, "  "+strings.Repeat("─", min(40, contentWidth-4)))

			d := dp.selectedDecl()
			if d != nil {
				lines = append(lines, renderDeclDetails(d, contentWidth)...)
			}
		} else {
			lines = append(lines, "  No declarations")
		}
	}

	// Apply scroll offset
	if dp.offset >= len(lines) {
		dp.offset = max(0, len(lines)-1)
	}
	visibleLines := lines
	if dp.offset < len(visibleLines) {
		visibleLines = visibleLines[dp.offset:]
	}
	if len(visibleLines) > dp.visibleRows() {
		visibleLines = visibleLines[:dp.visibleRows()]
	}

	var b strings.Builder
	for i, line := range visibleLines {
		b.WriteString(padRight(truncateString(line, contentWidth), contentWidth))
		if i < len(visibleLines)-1 {
			b.WriteString("\n")
		}
	}
	// Fill empty
	for i := len(visibleLines); i < dp.visibleRows(); i++ {
		b.WriteString(strings.Repeat(" ", contentWidth))
		if i < dp.visibleRows()-1 {
			b.WriteString("\n")
		}
	}

	title := titleStyle.Render(" Details ")

	borderStyle := inactiveBorderStyle
	if dp.focused {
		borderStyle = activeBorderStyle
	}

	content := borderStyle.
		Width(dp.width - 2).
		Height(dp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func renderDeclDetails(d *declRow, maxWidth int) []string {
	var lines []string

	lines = append(lines, fmt.Sprintf("  %s %s",
		fieldLabelStyle.Render("Kind:"),
		fieldValueStyle.Render(d.Kind)))

	if d.Name != "" {
		lines = append(lines, fmt.Sprintf("  %s %s",
			fieldLabelStyle.Render("Name:"),
			nodeNameStyle.Render(d.Name)))
	}

	if d.Module != "" {
		lines = append(lines, fmt.Sprintf("  %s %s",
			fieldLabelStyle.Render("Module:"),
			fieldValueStyle.Render(d.Module)))
	}

	if d.StartLine > 0 {
		lines = append(lines, fmt.Sprintf("  %s %d:%d - %d:%d",
			fieldLabelStyle.Render("Location:"),
			d.StartLine, d.StartCol, d.EndLine, d.EndCol))
	}

	// Node JSON
	if d.JSON != "" {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("  %s", fieldLabelStyle.Render("Node:")))

		nodeWidth := maxWidth - 6
		for _, line := range strings.Split(d.JSON, "\n") {
			lines = append(lines, "    "+nodeJSONStyle.Render(truncateString(line, nodeWidth)))
		}
	}

	return lines
}

func (dp detailsPane) visibleRows() int {
	return max(1, dp.height-4)
}

func (dp *detailsPane) setSize(w, h int) {
	dp.width = w
	dp.height = h
}
