package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds CLI configuration.
type Config struct {
	CachePath    string
	MatrixAPIKey string
	OverpassURL  string
	NominatimURL string
	MatrixURL    string
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	config := &Config{}

	// Load .env files first so env-based defaults work with existing flag parsing.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var showVersion bool
	flag.StringVar(&config.CachePath, "cache", "", "Path to SQLite geocode cache file (default: ~/.spotfinder/geocode.db)")
	flag.StringVar(&config.MatrixAPIKey, "matrix-key", "", "DistanceMatrix.ai API key (or set DISTANCEMATRIX_API_KEY env var)")
	flag.StringVar(&config.OverpassURL, "overpass-url", "", "Overpass API base URL (or set OVERPASS_URL env var)")
	flag.StringVar(&config.NominatimURL, "nominatim-url", "", "Nominatim base URL (or set NOMINATIM_URL env var)")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("spotfinder " + version)
		os.Exit(0)
	}

	// Fall back to env vars for anything not given as a flag
	if config.MatrixAPIKey == "" {
		config.MatrixAPIKey = os.Getenv("DISTANCEMATRIX_API_KEY")
	}
	if config.OverpassURL == "" {
		config.OverpassURL = os.Getenv("OVERPASS_URL")
	}
	if config.NominatimURL == "" {
		config.NominatimURL = os.Getenv("NOMINATIM_URL")
	}
	config.MatrixURL = os.Getenv("DISTANCEMATRIX_URL")

	// Set default cache path if not specified
	if config.CachePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		configDir := filepath.Join(home, ".spotfinder")
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		config.CachePath = filepath.Join(configDir, "geocode.db")
	}

	return config, nil
}
