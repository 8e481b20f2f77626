// Package venue turns raw provider records into ranked candidate meeting
// spots: normalization, the filter pipeline and the two ranking strategies.
package venue

import (
	"strings"

	"spotfinder/internal/model"
)

// Normalize maps provider records to canonical venues. Records with no
// resolvable name are dropped outright (an unnamed pin is useless to the
// group), as are records with neither a point coordinate nor an area
// center. Tags pass through verbatim for the filter heuristics.
func Normalize(records []model.RawVenueRecord) []model.Venue {
	venues := make([]model.Venue, 0, len(records))
	for _, r := range records {
		name := strings.TrimSpace(r.Tags["name"])
		if name == "" {
			continue
		}

		var coord model.GeoCoordinate
		switch {
		case r.Point != nil:
			coord = *r.Point
		case r.AreaCenter != nil:
			coord = *r.AreaCenter
		default:
			continue
		}

		venues = append(venues, model.Venue{
			ID:         r.ID,
			Name:       name,
			Coordinate: coord,
			Category:   strings.ToLower(r.Tags["amenity"]),
			Tags:       r.Tags,
		})
	}
	return venues
}
