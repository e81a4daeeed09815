// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/arupa/internal/model"
	"github.com/verte-zerg/arupa/internal/stats"
)

const (
	tabOverview = iota
	tabWordle
	tabFalling
)

const (
	chartHeight = 6
	dateFormat  = "2006-01-02 15:04"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	sectionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	src stats.ResultSource
	cfg model.StatsConfig

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	overview  viewport.Model
	tables    map[int]*table.Model

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
}

// NewModel constructs a stats UI model.
func NewModel(src stats.ResultSource, cfg model.StatsConfig) *Model {
	m := &Model{
		src:      src,
		cfg:      cfg,
		tabs:     []string{"Overview", "Wordle", "Tux Typing"},
		overview: viewport.New(0, 0),
	}
	wordle := newResultTable(wordleColumns(), nil)
	falling := newResultTable(fallingColumns(), nil)
	m.tables = map[int]*table.Model{tabWordle: &wordle, tabFalling: &falling}
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Lang: "
	m.filterInput.Placeholder = "ay, es or empty for all"
	m.filterInput.CharLimit = 8
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderOverview()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "r":
			m.refreshReport()
			return m, nil
		case "/":
			m.filterMode = true
			m.filterInput.SetValue(m.cfg.Lang)
			return m, m.filterInput.Focus()
		default:
			if t, ok := m.tables[m.activeTab]; ok {
				var cmd tea.Cmd
				*t, cmd = t.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filterInput.Blur()
		m.cfg.Lang = strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
		m.refreshReport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range m.tables {
		t.SetWidth(m.width)
		t.SetHeight(max(1, bodyHeight-1))
	}
	m.filterInput.Width = max(10, m.width-lipgloss.Width(m.filterInput.Prompt)-2)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = ((m.activeTab+delta)%count + count) % count
	for tab, t := range m.tables {
		if tab == m.activeTab {
			t.Focus()
		} else {
			t.Blur()
		}
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.src, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.overview.SetContent("Failed to load stats.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.tables[tabWordle].SetRows(wordleRows(report.Wordle))
	m.tables[tabFalling].SetRows(fallingRows(report.Falling))
	m.renderOverview()
}

func (m *Model) renderOverview() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.overview.SetContent(renderOverview(m.report, width))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + m.renderFilterSummary()
}

func (m *Model) renderFilterSummary() string {
	if m.filterMode {
		return m.filterInput.View()
	}
	lang := m.cfg.Lang
	if lang == "" {
		lang = "all"
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = fmt.Sprintf("%d", m.cfg.Last)
	}
	return headerStyle.Render(fmt.Sprintf("Lang: %s  Last: %s  Window: %d", lang, last, max(1, m.cfg.CurveWindow)))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Window: -/=  Lang: /  Refresh: r  Quit: q")
	if m.filterMode {
		help = headerStyle.Render("Apply: enter  Cancel: esc")
	}
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if t, ok := m.tables[m.activeTab]; ok {
		if len(t.Rows()) == 0 {
			return fitLines("No games found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(t.View()), m.width, height)
	}
	return fitLines(m.overview.View(), m.width, height)
}

func renderOverview(r stats.Report, width int) string {
	if r.Empty() {
		return "No games found."
	}
	ws, fs := r.WordleSummary, r.FallingSummary
	wordleCards := []string{
		metricCard("Played", fmt.Sprintf("%d", ws.Played)),
		metricCard("Win Rate", fmt.Sprintf("%.1f%%", ws.WinRate*100)),
		metricCard("Streak", fmt.Sprintf("%d", ws.CurrentStreak)),
		metricCard("Best Streak", fmt.Sprintf("%d", ws.BestStreak)),
		metricCard("Avg Attempts", fmt.Sprintf("%.2f", ws.AvgAttempts)),
	}
	fallingCards := []string{
		metricCard("Played", fmt.Sprintf("%d", fs.Played)),
		metricCard("Best Score", fmt.Sprintf("%d", fs.BestScore)),
		metricCard("Avg Score", fmt.Sprintf("%.2f", fs.AvgScore)),
		metricCard("Avg Duration", fmt.Sprintf("%.1fs", fs.AvgDuration)),
	}
	sections := []string{
		sectionStyle.Render("Wordle"),
		joinCards(wordleCards, width),
	}
	var buf bytes.Buffer
	if err := stats.RenderDistribution(&buf, ws, max(10, width/3)); err == nil && buf.Len() > 0 {
		sections = append(sections, strings.TrimRight(buf.String(), "\n"))
	}
	sections = append(sections, sectionStyle.Render("Tux Typing"), joinCards(fallingCards, width))
	if len(r.ScoreCurve) > 0 {
		chart := stats.ChartLines(r.ScoreCurve, stats.ChartWidthFor(width), chartHeight)
		sections = append(sections, "Score Curve", strings.Join(chart, "\n"))
	}
	return strings.Join(sections, "\n")
}

func joinCards(cards []string, width int) string {
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func wordleColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Lang", Width: 4},
		{Title: "Word", Width: 10},
		{Title: "Result", Width: 6},
		{Title: "Attempts", Width: 8},
	}
}

func fallingColumns() []table.Column {
	return []table.Column{
		{Title: "Ended", Width: 16},
		{Title: "Lang", Width: 4},
		{Title: "Score", Width: 6},
		{Title: "Missed", Width: 6},
		{Title: "Duration", Width: 9},
	}
}

func wordleRows(results []model.WordleResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		rows = append(rows, table.Row{
			r.EndedAt.Local().Format(dateFormat),
			r.Lang,
			truncateLine(r.Target, 10),
			outcome,
			fmt.Sprintf("%d", r.Attempts),
		})
	}
	return rows
}

func fallingRows(results []model.FallingResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		rows = append(rows, table.Row{
			r.EndedAt.Local().Format(dateFormat),
			r.Lang,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Missed),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
		})
	}
	return rows
}

func newResultTable(columns []table.Column, rows []table.Row) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(resultTableStyles())
	return t
}

func resultTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func nextCurveWindow(n int) int {
	switch {
	case n < 1:
		return 2
	case n < 5:
		return n + 1
	default:
		return min(50, n+5)
	}
}

func prevCurveWindow(n int) int {
	switch {
	case n <= 1:
		return 1
	case n <= 5:
		return n - 1
	default:
		return max(5, n-5)
	}
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
