package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"spotfinder/internal/model"
)

const matrixBase = "https://api.distancematrix.ai"

// MatrixClient wraps the DistanceMatrix.ai distance matrix API.
type MatrixClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewMatrixClient creates a DistanceMatrix.ai client. baseURL overrides the
// public endpoint (used in tests); pass "" for the default.
func NewMatrixClient(apiKey, baseURL string) *MatrixClient {
	if baseURL == "" {
		baseURL = matrixBase
	}
	return &MatrixClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Matrix requests current-traffic travel times from every origin to every
// destination. The result is always len(origins) rows of len(destinations)
// cells; pairs the provider couldn't estimate come back with OK=false.
func (c *MatrixClient) Matrix(ctx context.Context, origins, destinations []model.GeoCoordinate) ([][]model.TravelTime, error) {
	params := url.Values{}
	params.Set("origins", joinCoordinates(origins))
	params.Set("destinations", joinCoordinates(destinations))
	params.Set("departure_time", "now")
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/maps/api/distancematrix/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: matrix status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var result matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: JSON decode error: %v", ErrSourceUnavailable, err)
	}

	if result.Status != "OK" {
		return nil, fmt.Errorf("%w: matrix response status %q", ErrSourceUnavailable, result.Status)
	}

	matrix := make([][]model.TravelTime, len(origins))
	for i := range origins {
		matrix[i] = make([]model.TravelTime, len(destinations))
		if i >= len(result.Rows) {
			continue
		}
		for j := range destinations {
			if j >= len(result.Rows[i].Elements) {
				continue
			}
			el := result.Rows[i].Elements[j]
			if el.Status != "OK" {
				continue
			}
			seconds := el.Duration.Value
			if el.DurationInTraffic != nil {
				seconds = el.DurationInTraffic.Value
			}
			matrix[i][j] = model.TravelTime{OK: true, DurationSeconds: seconds}
		}
	}

	return matrix, nil
}

func joinCoordinates(coords []model.GeoCoordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
	}
	return strings.Join(parts, "|")
}

// API response types

type matrixResponse struct {
	Status string      `json:"status"`
	Rows   []matrixRow `json:"rows"`
}

type matrixRow struct {
	Elements []matrixElement `json:"elements"`
}

type matrixElement struct {
	Status            string          `json:"status"`
	Duration          matrixDuration  `json:"duration"`
	DurationInTraffic *matrixDuration `json:"duration_in_traffic"`
}

type matrixDuration struct {
	Value float64 `json:"value"`
}
