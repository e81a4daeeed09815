package tui

import (
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/arupa/internal/falling"
)

// Virtual pixels per terminal cell.
const (
	cellWidth  = 12.0
	cellHeight = 20.0
)

const collectorGlyph = "🐧"

var (
	letterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	hitStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#538D4E")).Bold(true)
	missStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	queuedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A90D9"))
	groundStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	collectorStyle = lipgloss.NewStyle()
)

// worldSize converts a board of cols x rows cells to virtual pixels.
func worldSize(cols, rows int) (float64, float64) {
	return float64(cols) * cellWidth, float64(rows) * cellHeight
}

func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / cellWidth)), int(math.Floor(y / cellHeight))
}

// renderBoard projects the snapshot onto a cols x rows grid. Letters above
// the top edge or outside the board are not drawn.
func renderBoard(snap falling.Snapshot, marks map[int]falling.Mark, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]styledRune, rows)
	for r := range grid {
		grid[r] = make([]styledRune, cols)
		for c := range grid[r] {
			grid[r][c] = blankRune
		}
	}
	queued := make(map[int]bool, len(snap.Queue))
	for _, id := range snap.Queue {
		queued[id] = true
	}
	for _, grp := range snap.Groups {
		for _, l := range grp.Letters {
			col, row := toCell(l.X, l.Y)
			if row < 0 || row >= rows || col < 0 || col >= cols {
				continue
			}
			style := letterStyle
			switch {
			case queued[grp.ID]:
				style = queuedStyle
			case grp.ID == snap.ActiveID:
				style = markStyle(marks[l.ID])
			}
			cell := newStyledRune(unicode.ToUpper(l.Char), style)
			if col+cell.width > cols {
				continue
			}
			grid[row][col] = cell
		}
	}
	lines := make([]string, 0, rows)
	for _, row := range grid {
		lines = append(lines, renderRow(row))
	}
	return lines
}

func markStyle(mark falling.Mark) lipgloss.Style {
	switch mark {
	case falling.MarkHit:
		return hitStyle
	case falling.MarkMiss:
		return missStyle
	default:
		return activeStyle
	}
}

// renderRow writes cells left to right, letting wide cells cover the next
// one.
func renderRow(cells []styledRune) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		b.WriteString(cells[i].s)
		i += max(1, cells[i].width)
	}
	return b.String()
}

// renderCollector draws the collector under the board with the ground line.
func renderCollector(x float64, cols int) []string {
	if cols <= 0 {
		return nil
	}
	glyphWidth := runewidth.StringWidth(collectorGlyph)
	col, _ := toCell(x, 0)
	col = min(max(0, col-glyphWidth/2), max(0, cols-glyphWidth))
	line := strings.Repeat(" ", col) + collectorStyle.Render(collectorGlyph)
	if pad := cols - col - glyphWidth; pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	ground := groundStyle.Render(strings.Repeat("─", cols))
	return []string{line, ground}
}
