package venue

import (
	"reflect"
	"testing"

	"spotfinder/internal/geo"
	"spotfinder/internal/model"
)

var testCenter = model.GeoCoordinate{Latitude: 52.52, Longitude: 13.405}

// near returns a coordinate roughly meters north of the test center.
func near(meters float64) model.GeoCoordinate {
	return geo.Offset(testCenter, meters, 0)
}

func testVenue(name, category string, c model.GeoCoordinate, tags map[string]string) model.Venue {
	if tags == nil {
		tags = map[string]string{}
	}
	return model.Venue{ID: name, Name: name, Category: category, Coordinate: c, Tags: tags}
}

func names(venues []model.Venue) []string {
	out := make([]string, len(venues))
	for i, v := range venues {
		out[i] = v.Name
	}
	return out
}

func TestApplyFilters_CategoryInclusion(t *testing.T) {
	venues := []model.Venue{
		testVenue("Cafe", "cafe", near(100), nil),
		testVenue("Garage", "parking", near(100), nil),
	}
	filters := model.SearchFilters{CategoryClass: FoodDrink}

	got := ApplyFilters(venues, testCenter, 2000, filters, DefaultConfig())
	if !reflect.DeepEqual(names(got), []string{"Cafe"}) {
		t.Errorf("expected only Cafe, got %v", names(got))
	}
}

func TestApplyFilters_EmptyClassSkipsCategoryStage(t *testing.T) {
	venues := []model.Venue{
		testVenue("Garage", "parking", near(100), nil),
	}
	filters := model.SearchFilters{CategoryClass: ""}

	got := ApplyFilters(venues, testCenter, 2000, filters, DefaultConfig())
	if len(got) != 1 {
		t.Errorf("unknown class should skip category filtering, got %v", names(got))
	}
}

func TestApplyFilters_AlcoholHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		category string
		tags     map[string]string
		want     bool
	}{
		{"bar always serves", "bar", nil, true},
		{"bar with no tag still serves", "bar", map[string]string{"alcohol": "no"}, true},
		{"cafe does not serve by default", "cafe", nil, false},
		{"cafe with explicit yes serves", "cafe", map[string]string{"alcohol": "yes"}, true},
		{"cafe with drink tag serves", "cafe", map[string]string{"drink:alcohol": "yes"}, true},
		{"restaurant plausibly serves", "restaurant", nil, true},
		{"restaurant with explicit no does not", "restaurant", map[string]string{"alcohol": "no"}, false},
		{"fast food does not serve", "fast_food", nil, false},
	}

	cfg := DefaultConfig()
	filters := model.SearchFilters{CategoryClass: FoodDrink, RequireAlcohol: true}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			venues := []model.Venue{testVenue("V", tt.category, near(100), tt.tags)}
			got := ApplyFilters(venues, testCenter, 2000, filters, cfg)
			if kept := len(got) == 1; kept != tt.want {
				t.Errorf("kept=%v, want %v", kept, tt.want)
			}
		})
	}
}

func TestApplyFilters_RadiusBound(t *testing.T) {
	inside := testVenue("Inside", "cafe", near(500), nil)
	outside := testVenue("Outside", "cafe", near(3000), nil)

	filters := model.SearchFilters{CategoryClass: FoodDrink}
	got := ApplyFilters([]model.Venue{inside, outside}, testCenter, 2000, filters, DefaultConfig())

	if !reflect.DeepEqual(names(got), []string{"Inside"}) {
		t.Errorf("expected only Inside, got %v", names(got))
	}
	if got[0].DistanceMeters <= 0 {
		t.Errorf("DistanceMeters should be populated, got %v", got[0].DistanceMeters)
	}
}

func TestApplyFilters_RadiusEdgeInclusive(t *testing.T) {
	v := testVenue("Edge", "cafe", near(500), nil)
	radius := geo.Distance(testCenter, v.Coordinate)

	filters := model.SearchFilters{CategoryClass: FoodDrink}
	got := ApplyFilters([]model.Venue{v}, testCenter, radius, filters, DefaultConfig())
	if len(got) != 1 {
		t.Errorf("venue exactly on the radius boundary should be kept")
	}
}

func TestApplyFilters_SortedByDistance(t *testing.T) {
	venues := []model.Venue{
		testVenue("Far", "cafe", near(900), nil),
		testVenue("Close", "cafe", near(100), nil),
		testVenue("Mid", "cafe", near(400), nil),
	}

	filters := model.SearchFilters{CategoryClass: FoodDrink}
	got := ApplyFilters(venues, testCenter, 2000, filters, DefaultConfig())

	if !reflect.DeepEqual(names(got), []string{"Close", "Mid", "Far"}) {
		t.Errorf("expected distance-ascending order, got %v", names(got))
	}
}

func TestApplyFilters_ResultCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResults = 2

	venues := []model.Venue{
		testVenue("A", "cafe", near(100), nil),
		testVenue("B", "cafe", near(200), nil),
		testVenue("C", "cafe", near(300), nil),
	}

	filters := model.SearchFilters{CategoryClass: FoodDrink}
	got := ApplyFilters(venues, testCenter, 2000, filters, cfg)

	if !reflect.DeepEqual(names(got), []string{"A", "B"}) {
		t.Errorf("cap should keep the closest venues, got %v", names(got))
	}
}

func TestApplyFilters_InputNotModified(t *testing.T) {
	venues := []model.Venue{
		testVenue("B", "cafe", near(200), nil),
		testVenue("A", "cafe", near(100), nil),
	}

	filters := model.SearchFilters{CategoryClass: FoodDrink}
	_ = ApplyFilters(venues, testCenter, 2000, filters, DefaultConfig())

	if venues[0].Name != "B" || venues[0].DistanceMeters != 0 {
		t.Errorf("input slice should be untouched, got %+v", venues[0])
	}
}

func TestApplyFilters_Idempotent(t *testing.T) {
	venues := []model.Venue{
		testVenue("A", "restaurant", near(150), map[string]string{"alcohol": "yes"}),
		testVenue("B", "bar", near(350), nil),
		testVenue("C", "cafe", near(250), nil),
	}

	filters := model.SearchFilters{CategoryClass: FoodDrink, RequireAlcohol: true}
	cfg := DefaultConfig()

	first := ApplyFilters(venues, testCenter, 2000, filters, cfg)
	second := ApplyFilters(first, testCenter, 2000, filters, cfg)

	if !reflect.DeepEqual(names(first), names(second)) {
		t.Errorf("re-filtering a filtered list changed it: %v vs %v", names(first), names(second))
	}
}
