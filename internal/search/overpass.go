package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spotfinder/internal/model"
)

const overpassBase = "https://overpass-api.de/api/interpreter"

// POIClient queries the Overpass API for points of interest.
type POIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPOIClient creates an Overpass client. baseURL overrides the public
// endpoint (used in tests); pass "" for the default.
func NewPOIClient(baseURL string) *POIClient {
	if baseURL == "" {
		baseURL = overpassBase
	}
	return &POIClient{
		baseURL: baseURL,
		// The query carries [timeout:25]; give the server room to answer.
		httpClient: &http.Client{Timeout: 35 * time.Second},
	}
}

// QueryArea fetches amenities within radiusMeters of center. categories is
// the amenity values to match; the provider's tags are passed through
// verbatim on each record.
func (c *POIClient) QueryArea(ctx context.Context, center model.GeoCoordinate, radiusMeters float64, categories []string) ([]model.RawVenueRecord, error) {
	query := fmt.Sprintf(`[out:json][timeout:25];
(
  nwr['amenity'~'%s'](around:%.0f,%f,%f);
);
out center;`,
		strings.Join(categories, "|"), radiusMeters, center.Latitude, center.Longitude)

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: overpass status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	payload, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	var result overpassResponse
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%w: JSON decode error: %v", ErrSourceUnavailable, err)
	}

	records := make([]model.RawVenueRecord, 0, len(result.Elements))
	for _, el := range result.Elements {
		record := model.RawVenueRecord{
			ID:   el.Type + "/" + strconv.FormatInt(el.ID, 10),
			Tags: el.Tags,
		}
		if el.Lat != nil && el.Lon != nil {
			record.Point = &model.GeoCoordinate{Latitude: *el.Lat, Longitude: *el.Lon}
		}
		if el.Center != nil {
			record.AreaCenter = &model.GeoCoordinate{Latitude: el.Center.Lat, Longitude: el.Center.Lon}
		}
		records = append(records, record)
	}

	return records, nil
}

// overpassElement is a POI from the Overpass API. Nodes carry lat/lon
// directly; ways and relations carry a computed center instead.
type overpassElement struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}
