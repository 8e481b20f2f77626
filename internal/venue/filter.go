package venue

import (
	"sort"

	"spotfinder/internal/geo"
	"spotfinder/internal/model"
)

// FoodDrink is the default category class.
const FoodDrink = "food_drink"

// Config carries the filter pipeline's tunables. The category membership
// sets are configuration, not constants: deployments can widen or narrow
// the buckets without touching the pipeline.
type Config struct {
	// CategoryClasses maps a broad class name to the amenity values it
	// includes.
	CategoryClasses map[string][]string

	// ExplicitAlcohol are categories that serve alcohol by definition; a
	// venue in this set is kept even when tagged alcohol=no.
	ExplicitAlcohol []string

	// PlausibleAlcohol are categories assumed to serve alcohol unless a
	// tag says otherwise.
	PlausibleAlcohol []string

	// AlcoholTagKeys are the tag keys checked for explicit yes/no values,
	// in order.
	AlcoholTagKeys []string

	// MaxResults bounds the final result count.
	MaxResults int

	// FairnessCandidates bounds how many venues enter travel-time ranking.
	FairnessCandidates int
}

// DefaultConfig mirrors the stock deployment: a food/drink bucket, OSM's
// two alcohol tag spellings, 50 results and 5 fairness candidates.
func DefaultConfig() Config {
	return Config{
		CategoryClasses: map[string][]string{
			FoodDrink: {
				"restaurant", "cafe", "bar", "pub", "fast_food",
				"food_court", "bistro", "biergarten", "nightclub",
			},
		},
		ExplicitAlcohol:    []string{"bar", "pub", "nightclub", "biergarten", "casino"},
		PlausibleAlcohol:   []string{"restaurant", "bistro", "food_court"},
		AlcoholTagKeys:     []string{"drink:alcohol", "alcohol"},
		MaxResults:         50,
		FairnessCandidates: 5,
	}
}

// Categories returns the amenity values for a class, for building the
// provider query.
func (c Config) Categories(class string) []string {
	return c.CategoryClasses[class]
}

// ApplyFilters runs the pipeline stages in order: category inclusion, the
// alcohol heuristic (only when requested), the distance bound, then the
// result cap. Surviving venues come back distance-ascending from center
// with DistanceMeters populated: the canonical order for distance mode and
// the pre-ranking for fairness mode. The input slice is not modified.
func ApplyFilters(venues []model.Venue, center model.GeoCoordinate, radiusMeters float64, filters model.SearchFilters, cfg Config) []model.Venue {
	kept := make([]model.Venue, 0, len(venues))

	included := toSet(cfg.Categories(filters.CategoryClass))
	for _, v := range venues {
		if len(included) > 0 && !included[v.Category] {
			continue
		}
		if filters.RequireAlcohol && !servesAlcohol(v, cfg) {
			continue
		}
		v.DistanceMeters = geo.Distance(center, v.Coordinate)
		if v.DistanceMeters > radiusMeters {
			continue
		}
		kept = append(kept, v)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].DistanceMeters < kept[j].DistanceMeters
	})

	if cfg.MaxResults > 0 && len(kept) > cfg.MaxResults {
		kept = kept[:cfg.MaxResults]
	}
	return kept
}

// servesAlcohol applies the three-tier heuristic. Tier precedence matters:
// an explicitly alcohol-serving category wins over an alcohol=no tag, an
// explicit yes tag wins over category defaults, and an explicit no tag
// only knocks out the plausible-category default.
func servesAlcohol(v model.Venue, cfg Config) bool {
	for _, cat := range cfg.ExplicitAlcohol {
		if v.Category == cat {
			return true
		}
	}

	for _, key := range cfg.AlcoholTagKeys {
		if v.Tags[key] == "yes" {
			return true
		}
	}

	for _, cat := range cfg.PlausibleAlcohol {
		if v.Category != cat {
			continue
		}
		for _, key := range cfg.AlcoholTagKeys {
			if v.Tags[key] == "no" {
				return false
			}
		}
		return true
	}

	return false
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
