package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"spotfinder/internal/cache"
	"spotfinder/internal/model"
)

const nominatimBase = "https://nominatim.openstreetmap.org"

// geocodeCacheTTL is generous because street addresses rarely move.
const geocodeCacheTTL = 30 * 24 * time.Hour

// Geocoder wraps the Nominatim search API.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
	store      *cache.Store
}

// NewGeocoder creates a Nominatim client. baseURL overrides the public
// endpoint (used in tests); pass "" for the default. store may be nil to
// disable caching.
func NewGeocoder(baseURL string, store *cache.Store) *Geocoder {
	if baseURL == "" {
		baseURL = nominatimBase
	}
	return &Geocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		store:      store,
	}
}

// Search resolves a free-text address to candidate locations, best match
// first. Results lacking a parseable coordinate are skipped.
func (g *Geocoder) Search(ctx context.Context, query string) ([]model.GeocodeResult, error) {
	if query == "" {
		return []model.GeocodeResult{}, nil
	}

	cacheKey := "geocode:" + query
	if g.store != nil {
		if payload, ok := g.store.Get(cacheKey, geocodeCacheTTL); ok {
			if results, err := parseNominatim(payload); err == nil {
				return results, nil
			}
		}
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "5")

	reqURL := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}

	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "spotfinder/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: geocoder status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var payload []byte
	if payload, err = readBody(resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	results, err := parseNominatim(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	if g.store != nil {
		_ = g.store.Put(cacheKey, payload)
	}

	return results, nil
}

func parseNominatim(payload []byte) ([]model.GeocodeResult, error) {
	var raw []nominatimResult
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("JSON decode error: %w", err)
	}

	results := make([]model.GeocodeResult, 0, len(raw))
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		results = append(results, model.GeocodeResult{
			DisplayName: r.DisplayName,
			Location:    model.GeoCoordinate{Latitude: lat, Longitude: lng},
		})
	}
	return results, nil
}

// nominatimResult is a single entry from the Nominatim search API.
// Coordinates arrive as strings.
type nominatimResult struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	Class       string `json:"class"`
}
