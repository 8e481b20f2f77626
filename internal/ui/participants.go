package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spotfinder/internal/model"
	"spotfinder/internal/search"
	"spotfinder/internal/util"
)

// Messages emitted to the root model.

// participantConfirmedMsg is sent when the add form is submitted with a
// resolved location. The location invariant lives here: the form refuses to
// emit until a geocoder suggestion has been selected.
type participantConfirmedMsg struct {
	name    string
	address string
	loc     model.GeoCoordinate
}

type participantRemovedMsg struct {
	id string
}

// startDiscoveryMsg asks the root model to switch to the results screen and
// kick off a search cycle.
type startDiscoveryMsg struct{}

type geocodeTick struct {
	seq int
}

// ParticipantsModel is the entry screen: add people by name and address,
// with debounced address autocomplete, then start the search.
type ParticipantsModel struct {
	geocoder *search.Geocoder

	adding       bool
	inputs       [2]textinput.Model // name, address
	focusedField int

	// Location resolved from the selected suggestion; nil until one is
	// picked or after the address text diverges from it.
	pendingLoc  *model.GeoCoordinate
	pendingAddr string

	searchSeq     int
	searchResults []model.GeocodeResult
	searchCursor  int
	showDropdown  bool
	searching     bool
	searchSpinner spinner.Model

	rows   []model.Participant
	cursor int

	error string
}

// NewParticipantsModel creates the participants screen, starting in the
// add form since an empty session has nothing to list.
func NewParticipantsModel(geocoder *search.Geocoder) *ParticipantsModel {
	name := textinput.New()
	name.Placeholder = "Name (optional)"
	name.CharLimit = 60
	name.Focus()

	addr := textinput.New()
	addr.Placeholder = "Address or place..."
	addr.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &ParticipantsModel{
		geocoder:      geocoder,
		adding:        true,
		inputs:        [2]textinput.Model{name, addr},
		searchSpinner: sp,
	}
}

// SetRows replaces the displayed participant list.
func (m *ParticipantsModel) SetRows(rows []model.Participant) {
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Adding reports whether the add form is open (text input captures keys).
func (m *ParticipantsModel) Adding() bool {
	return m.adding
}

// Update handles messages for this screen.
func (m *ParticipantsModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case geocodeTick:
		if msg.seq == m.searchSeq {
			return m.doGeocode(m.inputs[1].Value(), msg.seq)
		}
		return nil

	case model.GeocodeResultsMsg:
		if msg.Seq != m.searchSeq {
			return nil
		}
		m.searching = false
		if msg.Err != nil {
			m.error = fmt.Sprintf("Address lookup failed: %v", msg.Err)
			m.showDropdown = false
			return nil
		}
		m.error = ""
		m.searchResults = msg.Results
		m.searchCursor = 0
		m.showDropdown = len(msg.Results) > 0
		return nil

	case spinner.TickMsg:
		if !m.searching {
			return nil
		}
		var cmd tea.Cmd
		m.searchSpinner, cmd = m.searchSpinner.Update(msg)
		return cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.adding {
		return m.updateForm(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m *ParticipantsModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	// Dropdown navigation while suggestions are visible.
	if m.showDropdown && m.focusedField == 1 {
		switch msg.String() {
		case "esc":
			m.showDropdown = false
			return nil
		case "j", "down":
			if m.searchCursor < len(m.searchResults)-1 {
				m.searchCursor++
			}
			return nil
		case "k", "up":
			if m.searchCursor > 0 {
				m.searchCursor--
			}
			return nil
		case "enter", "tab":
			if m.searchCursor < len(m.searchResults) {
				m.selectSuggestion(m.searchResults[m.searchCursor])
			}
			return nil
		}
	}

	switch msg.String() {
	case "esc":
		if len(m.rows) > 0 {
			m.adding = false
			m.error = ""
		}
		return nil
	case "tab":
		m.nextField()
		return nil
	case "shift+tab":
		m.nextField()
		return nil
	case "enter":
		if m.pendingLoc == nil {
			m.error = "Pick an address suggestion first"
			return nil
		}
		confirmed := participantConfirmedMsg{
			name:    strings.TrimSpace(m.inputs[0].Value()),
			address: m.pendingAddr,
			loc:     *m.pendingLoc,
		}
		m.resetForm()
		return func() tea.Msg { return confirmed }
	}

	var cmd tea.Cmd
	m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	cmds := []tea.Cmd{cmd}

	if m.focusedField == 1 {
		query := strings.TrimSpace(m.inputs[1].Value())

		// The selected location is only valid while the text still matches
		// the suggestion it came from.
		if query != m.pendingAddr {
			m.pendingLoc = nil
		}

		if len(query) >= 3 && query != m.pendingAddr {
			m.searchSeq++
			seq := m.searchSeq
			m.searching = true
			m.showDropdown = false

			cmds = append(cmds, m.searchSpinner.Tick)
			cmds = append(cmds, tea.Tick(300*time.Millisecond, func(time.Time) tea.Msg {
				return geocodeTick{seq: seq}
			}))
		} else if len(query) < 3 {
			m.showDropdown = false
			m.searchResults = nil
			m.searching = false
		}
	}

	return tea.Batch(cmds...)
}

func (m *ParticipantsModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "a":
		m.adding = true
		m.focusedField = 0
		m.inputs[0].Focus()
		m.inputs[1].Blur()
	case "d":
		if len(m.rows) > 0 && m.cursor < len(m.rows) {
			id := m.rows[m.cursor].ID
			return func() tea.Msg { return participantRemovedMsg{id: id} }
		}
	case "s", "enter":
		if len(m.rows) > 0 {
			return func() tea.Msg { return startDiscoveryMsg{} }
		}
	}
	return nil
}

func (m *ParticipantsModel) doGeocode(query string, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		results, err := m.geocoder.Search(ctx, query)
		return model.GeocodeResultsMsg{Seq: seq, Results: results, Err: err}
	}
}

func (m *ParticipantsModel) selectSuggestion(result model.GeocodeResult) {
	m.inputs[1].SetValue(result.DisplayName)
	m.inputs[1].CursorEnd()
	m.pendingAddr = result.DisplayName
	loc := result.Location
	m.pendingLoc = &loc
	m.showDropdown = false
	m.searching = false
}

func (m *ParticipantsModel) nextField() {
	m.inputs[m.focusedField].Blur()
	m.focusedField = (m.focusedField + 1) % len(m.inputs)
	m.inputs[m.focusedField].Focus()
	m.showDropdown = false
}

func (m *ParticipantsModel) resetForm() {
	m.inputs[0].SetValue("")
	m.inputs[1].SetValue("")
	m.pendingLoc = nil
	m.pendingAddr = ""
	m.searchResults = nil
	m.showDropdown = false
	m.searching = false
	m.error = ""
	m.focusedField = 0
	m.inputs[0].Focus()
	m.inputs[1].Blur()
	m.adding = false
}

// View renders the screen.
func (m *ParticipantsModel) View(width, height int) string {
	var sections []string

	count := LabelStyle.Render(fmt.Sprintf("People (%d)", len(m.rows)))
	sections = append(sections, count)

	if len(m.rows) == 0 && !m.adding {
		sections = append(sections, HelpDescStyle.Render("Add people to get started!"))
	}

	for i, p := range m.rows {
		style := NormalRowStyle
		prefix := "  "
		if !m.adding && i == m.cursor {
			style = SelectedRowStyle
			prefix = "> "
		}
		name := style.Render(prefix + util.TruncateString(p.DisplayName, 24))
		addr := HelpDescStyle.Render("  " + util.TruncateString(p.RawAddress, max(10, width-36)))
		sections = append(sections, name+addr)
	}

	if m.adding {
		sections = append(sections, "")
		sections = append(sections, m.renderForm(width))
	} else if len(m.rows) > 0 {
		sections = append(sections, "")
		sections = append(sections, HelpDescStyle.Render("Press s to find a spot in the middle."))
	}

	if m.error != "" {
		sections = append(sections, "")
		sections = append(sections, ErrorStyle.Render(m.error))
	}

	content := strings.Join(sections, "\n")
	return PanelStyle.Width(width - 4).Height(height - 2).Render(content)
}

func (m *ParticipantsModel) renderForm(width int) string {
	nameField := renderFormField("Who", m.inputs[0], m.focusedField == 0)
	addrField := renderFormField("Where from *", m.inputs[1], m.focusedField == 1)

	if m.showDropdown && len(m.searchResults) > 0 {
		dropdown := m.renderDropdown(max(30, width-12))
		addrField = lipgloss.JoinVertical(lipgloss.Left, addrField, dropdown)
	} else if m.searching && m.focusedField == 1 {
		searching := HelpDescStyle.Render(m.searchSpinner.View() + " Searching...")
		addrField = lipgloss.JoinVertical(lipgloss.Left, addrField, searching)
	}

	var confirm string
	if m.pendingLoc != nil {
		confirm = SuccessStyle.Render("✓ " + util.FormatCoordinate(m.pendingLoc.Latitude, m.pendingLoc.Longitude) + "  — enter to add")
	} else {
		confirm = HelpDescStyle.Render("Type an address and pick a suggestion.")
	}

	return lipgloss.JoinVertical(lipgloss.Left, nameField, addrField, confirm)
}

func (m *ParticipantsModel) renderDropdown(width int) string {
	var items []string

	for i, result := range m.searchResults {
		style := NormalRowStyle
		if i == m.searchCursor {
			style = SelectedRowStyle
		}
		line := style.Width(width - 4).Render(util.TruncateString(result.DisplayName, width-6))
		items = append(items, line)
	}

	if len(items) == 0 {
		items = append(items, HelpDescStyle.Render("No results"))
	}

	return BorderStyle.Width(width).Render(strings.Join(items, "\n"))
}

func renderFormField(label string, input textinput.Model, focused bool) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}

	field := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		input.View(),
	)

	return style.Render(field)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
