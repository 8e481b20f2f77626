package model

// GeoCoordinate is an immutable latitude/longitude pair in degrees.
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// Participant is a person who needs to reach the meeting spot.
// Location is always resolved before a participant enters the session.
type Participant struct {
	ID          string
	DisplayName string
	Location    GeoCoordinate
	RawAddress  string
}

// SearchArea is the circle venues are searched in. Center follows the
// participant centroid unless the user has dragged it manually.
type SearchArea struct {
	Center         GeoCoordinate
	RadiusMeters   float64
	ManualOverride bool
}

// RawVenueRecord is a provider POI element before normalization. Point is
// set when the provider returned an exact coordinate; AreaCenter when the
// record is an area (way/relation) with a computed center. Tags are passed
// through verbatim.
type RawVenueRecord struct {
	ID         string
	Point      *GeoCoordinate
	AreaCenter *GeoCoordinate
	Tags       map[string]string
}

// Venue is a normalized, filterable candidate meeting spot. Instances are
// created fresh each search cycle and never mutated after ranking.
type Venue struct {
	ID         string
	Name       string
	Coordinate GeoCoordinate
	Category   string
	Tags       map[string]string

	DistanceMeters float64

	// Set only by the fairness ranker.
	FairnessScore        *float64
	AverageTravelMinutes *float64
}

// TravelTime is one cell of a travel-time matrix. OK is false when the
// provider returned no usable estimate for the origin/destination pair.
type TravelTime struct {
	OK              bool
	DurationSeconds float64
}

// RankingMode selects the ranking strategy.
type RankingMode int

const (
	RankByDistance RankingMode = iota
	RankByTrafficFairness
)

func (m RankingMode) String() string {
	if m == RankByTrafficFairness {
		return "fair travel time"
	}
	return "distance"
}

// SearchFilters is the caller-selected filter/ranking configuration.
type SearchFilters struct {
	CategoryClass  string
	RequireAlcohol bool
	RankingMode    RankingMode
}

// Screen represents the app screens.
type Screen int

const (
	ScreenParticipants Screen = iota
	ScreenResults
)

// CycleState is the orchestrator's observable state.
type CycleState int

const (
	CycleIdle CycleState = iota
	CycleSearching
	CycleReady
	CycleFailed
)

func (s CycleState) String() string {
	switch s {
	case CycleSearching:
		return "searching"
	case CycleReady:
		return "ready"
	case CycleFailed:
		return "failed"
	default:
		return "idle"
	}
}
