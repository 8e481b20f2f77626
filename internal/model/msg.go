package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// GeocodeResultsMsg is sent when an address lookup completes. Seq ties the
// result to the input revision that requested it; stale results are dropped.
type GeocodeResultsMsg struct {
	Seq     int
	Results []GeocodeResult
	Err     error
}

// GeocodeResult is one resolved address candidate.
type GeocodeResult struct {
	DisplayName string
	Location    GeoCoordinate
}

// SearchCompletedMsg is sent when a search cycle settles. Seq is the cycle's
// sequence tag; the session discards results from superseded cycles. Notice
// carries a non-fatal condition (e.g. fairness ranking failed open) to show
// alongside the results.
type SearchCompletedMsg struct {
	Seq    int
	Venues []Venue
	Notice error
	Err    error
}
