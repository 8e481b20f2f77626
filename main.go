package main

import (
	"fmt"
	"os"

	"spotfinder/cmd"
	"spotfinder/internal/cache"
	"spotfinder/internal/search"
	"spotfinder/internal/session"
	"spotfinder/internal/ui"
	"spotfinder/internal/venue"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open the geocode cache; the app works without it, just slower and
	// heavier on the geocoding service.
	var store *cache.Store
	store, err = cache.Open(config.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ℹ  Geocode cache unavailable: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	geocoder := search.NewGeocoder(config.NominatimURL, store)
	poi := search.NewPOIClient(config.OverpassURL)

	// Travel-time ranking needs a credential; without one the app runs in
	// distance-only mode.
	var matrix *search.MatrixClient
	if config.MatrixAPIKey != "" {
		matrix = search.NewMatrixClient(config.MatrixAPIKey, config.MatrixURL)
	} else {
		fmt.Fprintln(os.Stderr, "ℹ  No DISTANCEMATRIX_API_KEY set — fair-travel-time ranking disabled")
	}

	sess := session.New(matrix != nil)

	// Create and run Bubble Tea app
	p := tea.NewProgram(ui.New(sess, geocoder, poi, matrix, venue.DefaultConfig()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
