package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spotfinder/internal/geo"
	"spotfinder/internal/model"
	"spotfinder/internal/search"
	"spotfinder/internal/session"
	"spotfinder/internal/util"
	"spotfinder/internal/venue"
)

// How far one nudge keypress drags the center, as a fraction of the radius.
const nudgeFraction = 0.25

// searchDebounceTick coalesces rapid radius/center changes: only the last
// revision within the quiet window starts a cycle.
type searchDebounceTick struct {
	seq int
}

const debounceWindow = 300 * time.Millisecond

// searchTimeout bounds one whole cycle, dominated by the Overpass call.
const searchTimeout = 40 * time.Second

// Model is the root Bubble Tea model. It owns the session and is the only
// place search cycles are started and settled.
type Model struct {
	session *session.Session
	poi     *search.POIClient
	matrix  *search.MatrixClient
	cfg     venue.Config

	screen model.Screen

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	participants *ParticipantsModel
	results      *ResultsModel

	searchSpinner spinner.Model
	debounceSeq   int

	keys  KeyMap
	prefs UIPreferences
}

// New creates the root model. matrix may be nil when no travel-time
// credential is configured; fairness mode is then refused with a notice.
func New(sess *session.Session, geocoder *search.Geocoder, poi *search.POIClient, matrix *search.MatrixClient, cfg venue.Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	prefs := loadUIPreferences()
	sess.SetDefaultRadius(prefs.RadiusMeters)

	filters := sess.Filters()
	filters.RequireAlcohol = prefs.RequireAlcohol
	if prefs.FairnessMode {
		filters.RankingMode = model.RankByTrafficFairness
	}
	if err := sess.SetFilters(filters); err != nil {
		// Saved fairness preference without a key this run; quietly fall
		// back to distance mode.
		filters.RankingMode = model.RankByDistance
		_ = sess.SetFilters(filters)
	}

	return Model{
		session:       sess,
		poi:           poi,
		matrix:        matrix,
		cfg:           cfg,
		screen:        model.ScreenParticipants,
		participants:  NewParticipantsModel(geocoder),
		results:       NewResultsModel(),
		searchSpinner: sp,
		keys:          DefaultKeyMap(),
		prefs:         prefs,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		if msg.String() == "?" && !(m.screen == model.ScreenParticipants && m.participants.Adding()) {
			m.showingHelp = true
			return m, nil
		}

		if m.screen == model.ScreenResults {
			return m.handleResultsKey(msg)
		}
		return m.handleParticipantsKey(msg)

	case participantConfirmedMsg:
		m.session.AddParticipant(msg.name, msg.address, msg.loc)
		m.participants.SetRows(m.session.Participants())
		m.info = "Added " + msg.name
		if msg.name == "" {
			m.info = "Added"
		}
		m.error = ""
		return m, nil

	case participantRemovedMsg:
		if m.session.RemoveParticipant(msg.id) {
			m.participants.SetRows(m.session.Participants())
			m.info = "Removed"
		}
		// Adding or removing someone re-anchors the center, so results
		// computed for the old group are gone either way.
		if m.screen == model.ScreenResults {
			return m, m.startSearch()
		}
		return m, nil

	case startDiscoveryMsg:
		if !m.session.CanSearch() {
			return m, nil
		}
		m.screen = model.ScreenResults
		return m, m.startSearch()

	case searchDebounceTick:
		if msg.seq == m.debounceSeq {
			return m, m.startSearch()
		}
		return m, nil

	case model.SearchCompletedMsg:
		if msg.Err != nil {
			if m.session.Fail(msg.Seq, msg.Err) {
				m.error = "Couldn't fetch places. Try again (r)."
			}
			return m, nil
		}
		if m.session.Complete(msg.Seq, msg.Venues) {
			m.results.SetRows(m.session.Venues())
			m.error = ""
			if msg.Notice != nil {
				m.info = "Travel times unavailable — showing closest first"
			}
		}
		return m, nil

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		return m, nil

	case geocodeTick, model.GeocodeResultsMsg:
		return m, m.participants.Update(msg)

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.session.State() == model.CycleSearching {
			var cmd tea.Cmd
			m.searchSpinner, cmd = m.searchSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.participants.Update(msg))
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m Model) handleParticipantsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.participants.Adding() && msg.String() == "q" {
		return m, tea.Quit
	}
	m.info = ""
	return m, m.participants.Update(msg)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	area, ok := m.session.Area()
	if !ok {
		m.screen = model.ScreenParticipants
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.screen = model.ScreenParticipants
		m.participants.SetRows(m.session.Participants())
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.results.MoveDown()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.results.MoveUp()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.results.JumpToTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.results.JumpToBottom()
		return m, nil

	case key.Matches(msg, m.keys.RadiusUp):
		return m.adjustRadius(area.RadiusMeters + 250)

	case key.Matches(msg, m.keys.RadiusDown):
		return m.adjustRadius(area.RadiusMeters - 250)

	case key.Matches(msg, m.keys.NudgeNorth):
		return m.nudgeCenter(area, nudgeFraction*area.RadiusMeters, 0)

	case key.Matches(msg, m.keys.NudgeSouth):
		return m.nudgeCenter(area, -nudgeFraction*area.RadiusMeters, 0)

	case key.Matches(msg, m.keys.NudgeWest):
		return m.nudgeCenter(area, 0, -nudgeFraction*area.RadiusMeters)

	case key.Matches(msg, m.keys.NudgeEast):
		return m.nudgeCenter(area, 0, nudgeFraction*area.RadiusMeters)

	case key.Matches(msg, m.keys.Recenter):
		if err := m.session.RecenterToCentroid(); err != nil {
			return m, nil
		}
		m.info = "Centered on the group middle"
		return m, m.startSearch()

	case key.Matches(msg, m.keys.ToggleMode):
		return m.toggleRankingMode()

	case key.Matches(msg, m.keys.ToggleBooze):
		filters := m.session.Filters()
		filters.RequireAlcohol = !filters.RequireAlcohol
		_ = m.session.SetFilters(filters)
		m.prefs.RequireAlcohol = filters.RequireAlcohol
		_ = saveUIPreferences(m.prefs)
		return m, m.startSearch()

	case key.Matches(msg, m.keys.Retry):
		return m, m.startSearch()
	}

	return m, nil
}

func (m Model) adjustRadius(meters float64) (tea.Model, tea.Cmd) {
	if err := m.session.SetRadius(meters); err != nil {
		return m, nil
	}
	area, _ := m.session.Area()
	m.info = "Radius " + util.FormatRadius(area.RadiusMeters)
	m.prefs.RadiusMeters = area.RadiusMeters
	_ = saveUIPreferences(m.prefs)
	return m, m.scheduleSearch()
}

func (m Model) nudgeCenter(area model.SearchArea, northMeters, eastMeters float64) (tea.Model, tea.Cmd) {
	center := geo.Offset(area.Center, northMeters, eastMeters)
	if err := m.session.SetManualCenter(center); err != nil {
		return m, nil
	}
	m.info = "Center moved (c to snap back)"
	return m, m.scheduleSearch()
}

func (m Model) toggleRankingMode() (tea.Model, tea.Cmd) {
	filters := m.session.Filters()
	if filters.RankingMode == model.RankByDistance {
		filters.RankingMode = model.RankByTrafficFairness
	} else {
		filters.RankingMode = model.RankByDistance
	}

	if err := m.session.SetFilters(filters); err != nil {
		if errors.Is(err, session.ErrMissingCredential) {
			m.info = "Set DISTANCEMATRIX_API_KEY to rank by fair travel time"
		}
		return m, nil
	}

	m.prefs.FairnessMode = filters.RankingMode == model.RankByTrafficFairness
	_ = saveUIPreferences(m.prefs)
	return m, m.startSearch()
}

// scheduleSearch arms the debounce timer; the cycle starts only if no newer
// revision arrives within the window.
func (m *Model) scheduleSearch() tea.Cmd {
	m.debounceSeq++
	seq := m.debounceSeq
	return tea.Tick(debounceWindow, func(time.Time) tea.Msg {
		return searchDebounceTick{seq: seq}
	})
}

// startSearch begins a new cycle, superseding any in-flight one.
func (m *Model) startSearch() tea.Cmd {
	if !m.session.CanSearch() {
		return nil
	}

	seq := m.session.BeginCycle()
	area, _ := m.session.Area()
	filters := m.session.Filters()
	participants := m.session.Participants()

	return tea.Batch(
		m.searchSpinner.Tick,
		searchCmd(m.poi, m.matrix, m.cfg, area, filters, participants, seq),
	)
}

// searchCmd runs one full cycle off the update loop: POI fetch, normalize,
// filter, rank. Failures never escape as panics or raw transport errors;
// they come back inside the settled message.
func searchCmd(poi *search.POIClient, matrix *search.MatrixClient, cfg venue.Config, area model.SearchArea, filters model.SearchFilters, participants []model.Participant, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		records, err := poi.QueryArea(ctx, area.Center, area.RadiusMeters, cfg.Categories(filters.CategoryClass))
		if err != nil {
			return model.SearchCompletedMsg{Seq: seq, Err: err}
		}

		venues := venue.Normalize(records)
		venues = venue.ApplyFilters(venues, area.Center, area.RadiusMeters, filters, cfg)

		if filters.RankingMode == model.RankByTrafficFairness && matrix != nil {
			ranked, rankErr := venue.RankByFairness(ctx, matrix, participants, venues, cfg.FairnessCandidates)
			return model.SearchCompletedMsg{Seq: seq, Venues: ranked, Notice: rankErr}
		}

		return model.SearchCompletedMsg{Seq: seq, Venues: venues}
	}
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var breadcrumbParts []string
	var content string

	contentHeight := m.height - 4

	switch m.screen {
	case model.ScreenParticipants:
		breadcrumbParts = []string{"People"}
		content = m.participants.View(m.width, contentHeight)
	case model.ScreenResults:
		breadcrumbParts = []string{"People", "Spots"}
		controls := m.renderControls()
		fairness := m.session.Filters().RankingMode == model.RankByTrafficFairness
		list := m.results.View(m.width, contentHeight-2, fairness)
		content = lipgloss.JoinVertical(lipgloss.Left, controls, list)
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := RenderHelp(m.screen, m.participants.Adding(), m.width)

	contentStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight)
	content = contentStyle.Render(content)

	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		banners = append(banners, SuccessStyle.Width(m.width).Render(m.info))
	}

	parts := []string{header}
	parts = append(parts, banners...)
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderControls() string {
	area, ok := m.session.Area()
	if !ok {
		return ""
	}

	filters := m.session.Filters()

	radius := LabelStyle.Render("radius ") + NormalRowStyle.Render(util.FormatRadius(area.RadiusMeters))

	modeChip := ChipStyle
	if filters.RankingMode == model.RankByTrafficFairness {
		modeChip = ChipActiveStyle
	}
	mode := modeChip.Render(filters.RankingMode.String())

	boozeChip := ChipStyle
	if filters.RequireAlcohol {
		boozeChip = ChipActiveStyle
	}
	booze := boozeChip.Render("alcohol served")

	centerNote := ""
	if area.ManualOverride {
		centerNote = NoticeStyle.Render("manual center")
	}

	status := ""
	switch m.session.State() {
	case model.CycleSearching:
		status = HelpDescStyle.Render(m.searchSpinner.View() + " searching...")
	case model.CycleFailed:
		status = ErrorStyle.Render("last search failed — showing previous results")
	}

	pieces := []string{radius, mode, booze}
	if centerNote != "" {
		pieces = append(pieces, centerNote)
	}
	if status != "" {
		pieces = append(pieces, status)
	}

	return PanelStyle.Width(m.width).Padding(0, 2).Render(strings.Join(pieces, "  "))
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("spotfinder")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := width - leftLen - rightLen
	if padding < 0 {
		padding = 0
	}

	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}
