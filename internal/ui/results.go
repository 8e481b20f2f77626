package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spotfinder/internal/model"
	"spotfinder/internal/util"
)

// ResultsModel is the discovery screen's venue list.
type ResultsModel struct {
	rows   []model.Venue
	cursor int
	offset int
}

// NewResultsModel creates an empty results list.
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetRows replaces the list wholesale with a freshly settled cycle's
// venues.
func (m *ResultsModel) SetRows(rows []model.Venue) {
	m.rows = rows
	m.cursor = 0
	m.offset = 0
}

// Selected returns the venue under the cursor, or nil.
func (m *ResultsModel) Selected() *model.Venue {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// MoveDown moves the cursor down one row.
func (m *ResultsModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor up one row.
func (m *ResultsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// JumpToTop moves the cursor to the first row.
func (m *ResultsModel) JumpToTop() {
	m.cursor = 0
}

// JumpToBottom moves the cursor to the last row.
func (m *ResultsModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}
}

// View renders the venue list. fairness toggles the travel-time column.
func (m *ResultsModel) View(width, height int, fairness bool) string {
	if len(m.rows) == 0 {
		return PanelStyle.Width(width - 4).Render(
			HelpDescStyle.Render("No matching places found. Expand the radius?"))
	}

	nameWidth := max(20, width-46)

	header := TableHeaderStyle.Width(width).Render(
		pad("name", nameWidth) + pad("type", 14) + pad("distance", 10) + pad("travel", 10))

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}

	var lines []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visible; i++ {
		v := m.rows[i]

		travel := "—"
		if fairness {
			travel = util.FormatTravelMinutes(v.AverageTravelMinutes)
		}

		line := pad(util.TruncateString(v.Name, nameWidth-1), nameWidth) +
			pad(util.FormatCategory(v.Category), 14) +
			pad(util.FormatDistance(v.DistanceMeters), 10) +
			pad(travel, 10)

		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		lines = append(lines, style.Width(width).Render(line))
	}

	body := strings.Join(lines, "\n")

	detail := ""
	if v := m.Selected(); v != nil {
		street := v.Tags["addr:street"]
		if street == "" {
			street = util.FormatCoordinate(v.Coordinate.Latitude, v.Coordinate.Longitude)
		}
		detail = HelpDescStyle.Render(fmt.Sprintf("  %s · %s", street, util.FormatCategory(v.Category)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, detail)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
