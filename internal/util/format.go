package util

import (
	"fmt"
	"math"
	"strings"
)

// FormatDistance formats a distance in meters as "850 m" or "1.2 km".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatRadius formats a radius for the controls line, whole kilometers
// without a trailing .0 (e.g. "2 km", "7.5 km").
func FormatRadius(meters float64) string {
	km := meters / 1000
	if km == math.Trunc(km) {
		return fmt.Sprintf("%.0f km", km)
	}
	return fmt.Sprintf("%.1f km", km)
}

// FormatTravelMinutes formats average travel time as "~12 min" or "—" if
// unknown.
func FormatTravelMinutes(minutes *float64) string {
	if minutes == nil {
		return "—"
	}
	return fmt.Sprintf("~%.0f min", *minutes)
}

// FormatCategory makes a provider category readable: "fast_food" → "fast food".
func FormatCategory(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}

// FormatCoordinate formats a lat/lng pair for display.
func FormatCoordinate(lat, lng float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
