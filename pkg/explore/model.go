package explore

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusedPane tracks which pane has keyboard focus.
type focusedPane int

const (
	paneFilters focusedPane = iota
	paneFiles
	paneDetails
)

// overlay tracks which modal overlay is active.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlaySource
)

// pagerFinishedMsg is sent when an external pager process exits.
type pagerFinishedMsg struct{ err error }

// Model is the root Bubble Tea model for the explore TUI.
type Model struct {
	data    *exploreData
	filters filterPane
	files   filesPane
	details detailsPane

	focus         focusedPane
	activeOverlay overlay
	showFilters   bool

	// Help state
	helpContent string
	helpOffset  int

	// Source viewer state
	sourceContent string
	sourceOffset  int

	width  int
	height int
	err    error
}

// New creates a new Model by loading a JSON report from the given path.
func New(reportPath string) (Model, error) {
	data, err := loadReport(reportPath)
	if err != nil {
		return Model{}, err
	}

	facets := buildFacets(data.files)

	m := Model{
		data:        data,
		filters:     newFilterPane(facets),
		files:       newFilesPane(data.files),
		details:     newDetailsPane(),
		focus:       paneFiles,
		showFilters: true,
	}

	// Set initial focus
	m.files.focused = true

	// Select first file
	if f := m.files.selectedFile(); f != nil {
		m.details.setFile(f)
	}

	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("resast explore")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pagerFinishedMsg:
		// Pager exited, TUI resumes automatically
		return m, nil

	case tea.MouseMsg:
		if m.activeOverlay != overlayNone {
			return m, nil
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.handleMouseClick(msg.X, msg.Y)
		return m, nil

	case tea.KeyMsg:
		// Handle overlays first
		if m.activeOverlay != overlayNone {
			return m.updateOverlay(msg)
		}

		// Global keys (work regardless of focus)
		switch {
		case keyMatches(msg, defaultKeys.ForceQuit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.Quit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.ToggleHelp):
			m.activeOverlay = overlayHelp
			m.helpOffset = 0
			m.helpContent = renderHelp()
			return m, nil
		case keyMatches(msg, defaultKeys.ToggleFilters):
			m.showFilters = !m.showFilters
			return m, nil
		case keyMatches(msg, defaultKeys.FocusFilters):
			m.setFocus(paneFilters)
			return m, nil
		case keyMatches(msg, defaultKeys.FocusFiles):
			m.setFocus(paneFiles)
			return m, nil
		case keyMatches(msg, defaultKeys.FocusDetails):
			m.setFocus(paneDetails)
			return m, nil
		}

		// Source viewer (files or details)
		if m.focus == paneFiles || m.focus == paneDetails {
			if keyMatches(msg, defaultKeys.OpenSource) {
				cmd := m.openSource()
				return m, cmd
			}
		}

		// Delegate to focused pane
		switch m.focus {
		case paneFilters:
			var cmd tea.Cmd
			m.filters, cmd = m.filters.Update(msg)
			m.applyFilters()
			return m, cmd
		case paneFiles:
			prevCursor := m.files.cursor
			var cmd tea.Cmd
			m.files, cmd = m.files.Update(msg)
			if m.files.cursor != prevCursor {
				if f := m.files.selectedFile(); f != nil {
					m.details.setFile(f)
				}
			}
			return m, cmd
		case paneDetails:
			var cmd tea.Cmd
			m.details, cmd = m.details.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeOverlay {
	case overlayHelp:
		switch {
		case keyMatches(msg, defaultKeys.Quit),
			keyMatches(msg, defaultKeys.ForceQuit),
			keyMatches(msg, defaultKeys.ToggleHelp):
			m.activeOverlay = overlayNone
		case keyMatches(msg, defaultKeys.Down):
			m.helpOffset++
		case keyMatches(msg, defaultKeys.Up):
			if m.helpOffset > 0 {
				m.helpOffset--
			}
		case keyMatches(msg, defaultKeys.PageDown):
			m.helpOffset += m.height / 2
		case keyMatches(msg, defaultKeys.PageUp):
			m.helpOffset = max(0, m.helpOffset-m.height/2)
		}
	case overlaySource:
		switch {
		case keyMatches(msg, defaultKeys.Quit),
			keyMatches(msg, defaultKeys.ForceQuit),
			keyMatches(msg, defaultKeys.OpenSource):
			m.activeOverlay = overlayNone
		case keyMatches(msg, defaultKeys.Down):
			m.sourceOffset++
		case keyMatches(msg, defaultKeys.Up):
			if m.sourceOffset > 0 {
				m.sourceOffset--
			}
		case keyMatches(msg, defaultKeys.PageDown):
			m.sourceOffset += m.height / 2
		case keyMatches(msg, defaultKeys.PageUp):
			m.sourceOffset = max(0, m.sourceOffset-m.height/2)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Render overlays
	if m.activeOverlay != overlayNone {
		return m.renderOverlay()
	}

	// Status bar (bottom)
	statusBar := m.renderStatusBar()

	// Main layout
	contentHeight := m.height - 2 // status bar + padding

	var mainContent string
	if m.showFilters {
		filtersWidth := min(m.width*30/100, 50)
		dataWidth := m.width - filtersWidth

		filesHeight := contentHeight * 40 / 100
		detailsHeight := contentHeight - filesHeight

		m.filters.setSize(filtersWidth, contentHeight)
		m.files.setSize(dataWidth, filesHeight)
		m.details.setSize(dataWidth, detailsHeight)

		filtersView := m.filters.View()
		filesView := m.files.View()
		detailsView := m.details.View()

		dataColumn := lipgloss.JoinVertical(lipgloss.Left, filesView, detailsView)
		mainContent = lipgloss.JoinHorizontal(lipgloss.Top, filtersView, dataColumn)
	} else {
		dataWidth := m.width
		filesHeight := contentHeight * 40 / 100
		detailsHeight := contentHeight - filesHeight

		m.files.setSize(dataWidth, filesHeight)
		m.details.setSize(dataWidth, detailsHeight)

		filesView := m.files.View()
		detailsView := m.details.View()
		mainContent = lipgloss.JoinVertical(lipgloss.Left, filesView, detailsView)
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m *Model) renderStatusBar() string {
	left := statusBarStyle.Render(fmt.Sprintf(" %d files | %d filtered",
		len(m.data.files), len(m.files.rows)))

	right := fmt.Sprintf("%s:%s  %s:%s  %s:%s  %s:%s  %s:%s  %s:%s",
		helpKeyStyle.Render("j/k"), helpDescStyle.Render("nav"),
		helpKeyStyle.Render("f/d"), helpDescStyle.Render("focus"),
		helpKeyStyle.Render("s"), helpDescStyle.Render("sort"),
		helpKeyStyle.Render("o"), helpDescStyle.Render("source"),
		helpKeyStyle.Render("F7"), helpDescStyle.Render("filters"),
		helpKeyStyle.Render("?"), helpDescStyle.Render("help"),
	)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderOverlay() string {
	overlayWidth := m.width * 80 / 100
	overlayHeight := m.height * 80 / 100

	var content string
	var title string

	switch m.activeOverlay {
	case overlayHelp:
		title = " Help (q to close) "
		content = m.renderHelpContent(overlayHeight - 4)
	case overlaySource:
		title = " Source (q to close) "
		content = m.renderSourceContent(overlayHeight - 4)
	}

	box := modalStyle.
		Width(overlayWidth - 4).
		Height(overlayHeight - 2).
		Render(content)

	titleRendered := titleStyle.Render(title)

	overlayView := lipgloss.JoinVertical(lipgloss.Left, titleRendered, box)

	// Center on screen
	hPad := (m.width - lipgloss.Width(overlayView)) / 2
	vPad := (m.height - lipgloss.Height(overlayView)) / 2

	return strings.Repeat("\n", max(0, vPad)) +
		lipgloss.NewStyle().PaddingLeft(max(0, hPad)).Render(overlayView)
}

func (m *Model) renderHelpContent(height int) string {
	lines := strings.Split(m.helpContent, "\n")
	if m.helpOffset >= len(lines) {
		m.helpOffset = max(0, len(lines)-1)
	}
	end := min(m.helpOffset+height, len(lines))
	visible := lines[m.helpOffset:end]
	return strings.Join(visible, "\n")
}

func (m *Model) renderSourceContent(height int) string {
	if m.sourceContent == "" {
		return "  No source available"
	}
	lines := strings.Split(m.sourceContent, "\n")
	if m.sourceOffset >= len(lines) {
		m.sourceOffset = max(0, len(lines)-1)
	}
	end := min(m.sourceOffset+height, len(lines))
	visible := lines[m.sourceOffset:end]
	return strings.Join(visible, "\n")
}

func (m *Model) setFocus(p focusedPane) {
	m.filters.focused = p == paneFilters
	m.files.focused = p == paneFiles
	m.details.focused = p == paneDetails
	m.focus = p
}

func (m *Model) handleMouseClick(x, y int) {
	contentHeight := m.height - 2

	if m.showFilters {
		filtersWidth := min(m.width*30/100, 50)
		filesHeight := contentHeight * 40 / 100

		if x < filtersWidth && y < contentHeight {
			// Clicked in filters pane
			m.setFocus(paneFilters)
			row := y - 2 // title + border top
			if row >= 0 {
				idx := row + m.filters.offset
				if idx >= 0 && idx < len(m.filters.items) {
					m.filters.cursor = idx
					m.filters.toggleCurrent()
					m.applyFilters()
				}
			}
		} else if x >= filtersWidth && y < filesHeight {
			// Clicked in files pane
			m.setFocus(paneFiles)
			row := y - 4 // title + border top + header + separator
			if row >= 0 {
				idx := row + m.files.offset
				if idx >= 0 && idx < len(m.files.rows) {
					m.files.cursor = idx
					if f := m.files.selectedFile(); f != nil {
						m.details.setFile(f)
					}
				}
			}
		} else if x >= filtersWidth && y >= filesHeight {
			// Clicked in details pane
			m.setFocus(paneDetails)
		}
	} else {
		filesHeight := contentHeight * 40 / 100

		if y < filesHeight {
			// Clicked in files pane
			m.setFocus(paneFiles)
			row := y - 4
			if row >= 0 {
				idx := row + m.files.offset
				if idx >= 0 && idx < len(m.files.rows) {
					m.files.cursor = idx
					if f := m.files.selectedFile(); f != nil {
						m.details.setFile(f)
					}
				}
			}
		} else {
			// Clicked in details pane
			m.setFocus(paneDetails)
		}
	}
}

func (m *Model) applyFilters() {
	if !m.filters.facets.hasActiveFilters() {
		m.files.setFilteredRows(m.data.files)
	} else {
		var filtered []*fileRow
		for _, f := range m.data.files {
			if m.filters.facets.matchesFile(f) {
				filtered = append(filtered, f)
			}
		}
		m.files.setFilteredRows(filtered)
	}
	// Update facet counts based on all files (not just filtered)
	m.filters.facets.updateCounts(m.data.files)

	// Update details
	if f := m.files.selectedFile(); f != nil {
		m.details.setFile(f)
	} else {
		m.details.setFile(nil)
	}
}

func (m *Model) openSource() tea.Cmd {
	f := m.files.selectedFile()
	if f == nil {
		return nil
	}

	// When the report source names a file that exists on disk, open it in
	// a pager at the selected declaration's line.
	if _, err := os.Stat(f.Source); err == nil {
		line := 0
		if d := m.details.selectedDecl(); d != nil {
			line = d.StartLine
		}
		return m.openInPager(f.Source, line)
	}

	// Fallback: show the selected declaration's node JSON in an overlay.
	if d := m.details.selectedDecl(); d != nil {
		m.sourceContent = d.JSON
	} else {
		m.sourceContent = ""
	}
	m.sourceOffset = 0
	m.activeOverlay = overlaySource
	return nil
}

func (m *Model) openInPager(filePath string, line int) tea.Cmd {
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = "less"
	}

	var args []string
	if line > 0 && pager == "less" {
		args = append(args, fmt.Sprintf("+%d", line))
	}
	args = append(args, filePath)

	c := exec.Command(pager, args...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return pagerFinishedMsg{err: err}
	})
}

// renderHelp generates help text.
func renderHelp() string {
	return `Resast Explore - Interactive Report Browser

NAVIGATION
  j/k or Up/Down    Move cursor up/down
  h/l or Left/Right Navigate declarations (details) or collapse/expand (filters)
  Ctrl+f/Ctrl+b     Page down/up
  g/G               Jump to top/bottom

FOCUS
  F1                Focus filters pane
  f                 Focus files pane
  d                 Focus details pane
  F7                Toggle filters pane visibility

FILTERS
  x or Space        Toggle filter value
  Ctrl+r            Reset all filters

VIEWS
  s                 Cycle sort column
  o                 Open source (pager for files on disk, node JSON otherwise)
  ?                 Toggle this help screen

QUIT
  q                 Quit
  Ctrl+c            Force quit
`
}
