// Package session owns all mutable state for one planning session: the
// participant set, the search area, the active filters and the latest
// settled venue list. It is also the search orchestrator's state machine:
// cycles are tagged with a monotonically increasing sequence number and a
// cycle's result is discarded unless its tag is still the latest when it
// resolves. There are no globals; the UI holds exactly one Session.
package session

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"spotfinder/internal/geo"
	"spotfinder/internal/model"
	"spotfinder/internal/venue"
)

var (
	// ErrInvalidRadius is returned for a non-positive radius.
	ErrInvalidRadius = errors.New("session: radius must be positive")

	// ErrNoSearchArea is returned when area operations are attempted
	// before any participant exists.
	ErrNoSearchArea = errors.New("session: no search area yet")

	// ErrMissingCredential is returned when traffic-fairness ranking is
	// selected without a travel-time API key configured.
	ErrMissingCredential = errors.New("session: travel-time API key not configured")
)

// Radius bounds in meters. The default matches a comfortable walk/short
// ride in a city.
const (
	MinRadiusMeters     = 200.0
	MaxRadiusMeters     = 10000.0
	DefaultRadiusMeters = 2000.0
)

// Session is the single owned context for the whole app.
type Session struct {
	participants  []model.Participant
	area          *model.SearchArea
	filters       model.SearchFilters
	venues        []model.Venue
	state         model.CycleState
	seq           int
	lastErr       error
	hasMatrixKey  bool
	defaultRadius float64
}

// New creates an empty session. hasMatrixKey gates traffic-fairness mode.
func New(hasMatrixKey bool) *Session {
	return &Session{
		filters: model.SearchFilters{
			CategoryClass: venue.FoodDrink,
			RankingMode:   model.RankByDistance,
		},
		hasMatrixKey:  hasMatrixKey,
		defaultRadius: DefaultRadiusMeters,
	}
}

// SetDefaultRadius sets the radius used when the search area is first
// created (e.g. restored from saved preferences). Out-of-range values are
// clamped; non-positive ones ignored.
func (s *Session) SetDefaultRadius(meters float64) {
	if meters <= 0 {
		return
	}
	if meters < MinRadiusMeters {
		meters = MinRadiusMeters
	}
	if meters > MaxRadiusMeters {
		meters = MaxRadiusMeters
	}
	s.defaultRadius = meters
}

// AddParticipant adds a person with an already-resolved location and
// re-anchors the search center to the new centroid. Any manual center
// override is cleared: "meet in the middle" stays authoritative over stale
// manual positioning whenever the group changes.
func (s *Session) AddParticipant(name, address string, loc model.GeoCoordinate) model.Participant {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Friend"
	}

	p := model.Participant{
		ID:          uuid.NewString(),
		DisplayName: name,
		Location:    loc,
		RawAddress:  address,
	}
	s.participants = append(s.participants, p)
	s.recenter()
	return p
}

// RemoveParticipant removes by id and re-anchors the center, clearing any
// manual override. When the last participant leaves, the search area and
// venue list are dropped and the session goes idle.
func (s *Session) RemoveParticipant(id string) bool {
	for i, p := range s.participants {
		if p.ID == id {
			s.participants = append(s.participants[:i], s.participants[i+1:]...)
			if len(s.participants) == 0 {
				s.area = nil
				s.venues = nil
				s.state = model.CycleIdle
				s.lastErr = nil
				return true
			}
			s.recenter()
			return true
		}
	}
	return false
}

func (s *Session) recenter() {
	coords := make([]model.GeoCoordinate, len(s.participants))
	for i, p := range s.participants {
		coords[i] = p.Location
	}
	center, err := geo.Centroid(coords)
	if err != nil {
		return
	}

	if s.area == nil {
		s.area = &model.SearchArea{RadiusMeters: s.defaultRadius}
	}
	s.area.Center = center
	s.area.ManualOverride = false
}

// SetRadius validates and updates the search radius, clamping it into the
// supported range. It does not start a search; triggering is the
// orchestration layer's job.
func (s *Session) SetRadius(meters float64) error {
	if meters <= 0 {
		return ErrInvalidRadius
	}
	if s.area == nil {
		return ErrNoSearchArea
	}
	if meters < MinRadiusMeters {
		meters = MinRadiusMeters
	}
	if meters > MaxRadiusMeters {
		meters = MaxRadiusMeters
	}
	s.area.RadiusMeters = meters
	return nil
}

// SetManualCenter moves the search center and marks it as a manual
// override, so participant-set changes are the only thing that moves it
// back.
func (s *Session) SetManualCenter(c model.GeoCoordinate) error {
	if s.area == nil {
		return ErrNoSearchArea
	}
	s.area.Center = c
	s.area.ManualOverride = true
	return nil
}

// RecenterToCentroid drops a manual override and recomputes the center
// from the current participants.
func (s *Session) RecenterToCentroid() error {
	if s.area == nil {
		return ErrNoSearchArea
	}
	s.recenter()
	return nil
}

// SetFilters replaces the filter/ranking selection. Selecting
// traffic-fairness without a configured travel-time credential is refused
// with ErrMissingCredential and the previous filters stay in effect.
func (s *Session) SetFilters(f model.SearchFilters) error {
	if f.RankingMode == model.RankByTrafficFairness && !s.hasMatrixKey {
		return ErrMissingCredential
	}
	s.filters = f
	return nil
}

// CanSearch reports whether a search cycle can start.
func (s *Session) CanSearch() bool {
	return s.area != nil && len(s.participants) > 0
}

// BeginCycle starts a new search cycle and returns its sequence tag. Any
// still-pending cycle is superseded: its eventual result will not match
// the latest tag and will be dropped.
func (s *Session) BeginCycle() int {
	s.seq++
	s.state = model.CycleSearching
	return s.seq
}

// Complete settles a cycle. The venue list is replaced wholesale, never
// patched, so readers see either the prior complete list or the new one.
// Returns false (and changes nothing) when the cycle has been superseded.
func (s *Session) Complete(seq int, venues []model.Venue) bool {
	if seq != s.seq {
		return false
	}
	s.venues = venues
	s.state = model.CycleReady
	s.lastErr = nil
	return true
}

// Fail marks the latest cycle failed, keeping the previous venue list
// visible (stale-but-present). Superseded failures are ignored.
func (s *Session) Fail(seq int, err error) bool {
	if seq != s.seq {
		return false
	}
	s.state = model.CycleFailed
	s.lastErr = err
	return true
}

// Participants returns a copy of the participant set.
func (s *Session) Participants() []model.Participant {
	return append([]model.Participant(nil), s.participants...)
}

// Area returns the current search area, or false before one exists.
func (s *Session) Area() (model.SearchArea, bool) {
	if s.area == nil {
		return model.SearchArea{}, false
	}
	return *s.area, true
}

// Filters returns the active filter selection.
func (s *Session) Filters() model.SearchFilters {
	return s.filters
}

// Venues returns the latest settled venue list.
func (s *Session) Venues() []model.Venue {
	return s.venues
}

// State returns the observable cycle state.
func (s *Session) State() model.CycleState {
	return s.state
}

// LastError returns the error from the most recent failed cycle, if the
// session is in the failed state.
func (s *Session) LastError() error {
	return s.lastErr
}
