package search

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spotfinder/internal/model"
)

func TestQueryArea_MapsElements(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotQuery = string(body)
		w.Write([]byte(`{"elements": [
			{"id": 11, "type": "node", "lat": 52.52, "lon": 13.40, "tags": {"name": "Corner Cafe", "amenity": "cafe"}},
			{"id": 22, "type": "way", "center": {"lat": 52.53, "lon": 13.41}, "tags": {"name": "Big Hall", "amenity": "restaurant"}}
		]}`))
	}))
	defer server.Close()

	client := NewPOIClient(server.URL)
	center := model.GeoCoordinate{Latitude: 52.52, Longitude: 13.405}
	records, err := client.QueryArea(context.Background(), center, 1500, []string{"cafe", "restaurant"})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(gotQuery, "'amenity'~'cafe|restaurant'") {
		t.Errorf("query should match the requested categories, got:\n%s", gotQuery)
	}
	if !strings.Contains(gotQuery, "around:1500") {
		t.Errorf("query should carry the radius, got:\n%s", gotQuery)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	node := records[0]
	if node.ID != "node/11" {
		t.Errorf("unexpected id %q", node.ID)
	}
	if node.Point == nil || node.Point.Latitude != 52.52 {
		t.Errorf("node should carry an exact point, got %+v", node.Point)
	}
	if node.AreaCenter != nil {
		t.Errorf("node should not have an area center")
	}

	way := records[1]
	if way.ID != "way/22" {
		t.Errorf("unexpected id %q", way.ID)
	}
	if way.Point != nil {
		t.Errorf("way should not carry an exact point")
	}
	if way.AreaCenter == nil || way.AreaCenter.Longitude != 13.41 {
		t.Errorf("way should carry its computed center, got %+v", way.AreaCenter)
	}
	if way.Tags["name"] != "Big Hall" {
		t.Errorf("tags should pass through, got %v", way.Tags)
	}
}

func TestQueryArea_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewPOIClient(server.URL)
	_, err := client.QueryArea(context.Background(), model.GeoCoordinate{}, 1000, []string{"cafe"})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestQueryArea_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": [`))
	}))
	defer server.Close()

	client := NewPOIClient(server.URL)
	_, err := client.QueryArea(context.Background(), model.GeoCoordinate{}, 1000, []string{"cafe"})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestQueryArea_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": []}`))
	}))
	defer server.Close()

	client := NewPOIClient(server.URL)
	records, err := client.QueryArea(context.Background(), model.GeoCoordinate{}, 1000, []string{"cafe"})
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
