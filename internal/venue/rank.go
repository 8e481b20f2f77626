package venue

import (
	"context"
	"math"
	"sort"

	"spotfinder/internal/model"
)

// TravelTimeSource provides an origins×destinations travel-time matrix.
type TravelTimeSource interface {
	Matrix(ctx context.Context, origins, destinations []model.GeoCoordinate) ([][]model.TravelTime, error)
}

// RankByFairness orders the top maxCandidates venues (assumed to arrive
// distance-ascending) by how evenly the group's travel times are spread:
// ascending population variance of per-participant minutes. The goal is
// that everyone travels roughly equally long, not that the total is
// minimal. A candidate with no valid travel time at all sorts last.
//
// The ranker fails open: when the matrix lookup errors, the candidates are
// returned in their incoming distance order along with the error so the
// caller can surface a notice instead of an empty list.
func RankByFairness(ctx context.Context, src TravelTimeSource, participants []model.Participant, venues []model.Venue, maxCandidates int) ([]model.Venue, error) {
	if len(venues) == 0 || len(participants) == 0 {
		return venues, nil
	}

	candidates := venues
	if maxCandidates > 0 && len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	candidates = append([]model.Venue(nil), candidates...)

	origins := make([]model.GeoCoordinate, len(participants))
	for i, p := range participants {
		origins[i] = p.Location
	}
	destinations := make([]model.GeoCoordinate, len(candidates))
	for j, v := range candidates {
		destinations[j] = v.Coordinate
	}

	matrix, err := src.Matrix(ctx, origins, destinations)
	if err != nil {
		return candidates, err
	}

	for j := range candidates {
		var times []float64
		for i := range participants {
			if i < len(matrix) && j < len(matrix[i]) && matrix[i][j].OK {
				times = append(times, matrix[i][j].DurationSeconds)
			}
		}

		// Pairs without a valid estimate are excluded from the stats, not
		// treated as zero. A candidate with no data at all scores +Inf so
		// it is never recommended over a scored venue.
		if len(times) == 0 {
			score := math.Inf(1)
			candidates[j].FairnessScore = &score
			continue
		}

		var total float64
		for _, t := range times {
			total += t
		}
		mean := total / float64(len(times))

		var variance float64
		for _, t := range times {
			variance += (t - mean) * (t - mean)
		}
		variance /= float64(len(times))

		score := variance
		avg := math.Round(mean / 60)
		candidates[j].FairnessScore = &score
		candidates[j].AverageTravelMinutes = &avg
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return *candidates[a].FairnessScore < *candidates[b].FairnessScore
	})

	return candidates, nil
}
