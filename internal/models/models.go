package models

import (
	"strings"
	"time"
)

// Coordinates is a resolved latitude/longitude pair. Immutable once a fetch
// has been issued for it.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ResolvedLocation is the output of the resolution chain and what gets
// persisted as the preferred location after a successful fetch.
type ResolvedLocation struct {
	Coordinates Coordinates `json:"coordinates"`
	DisplayName string      `json:"display_name"`
}

// NameMatches reports whether the given name refers to this location, ignoring
// case. Geocoded display names carry ", Admin1, Country" suffixes, so the bare
// place name also matches.
func (r ResolvedLocation) NameMatches(name string) bool {
	name = strings.TrimSpace(name)
	if strings.EqualFold(r.DisplayName, name) {
		return true
	}
	first, _, _ := strings.Cut(r.DisplayName, ",")
	return strings.EqualFold(strings.TrimSpace(first), name)
}

// GeocodeResult is one candidate returned by the geocoding API for a
// free-text query.
type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
}

// DisplayName renders the result the way the suggestion list shows it:
// "Name, Admin1, Country" with empty parts dropped.
func (g GeocodeResult) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{g.Name, g.Admin1, g.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// HourlyBundle holds the hourly forecast as parallel arrays indexed by time
// step. All slices share the length of Time; missing values are nil and must
// be treated as zero or "not available" by consumers, never as a failure.
type HourlyBundle struct {
	Time              []time.Time `json:"time"`
	Temperature       []*float64  `json:"temperature"`
	Precipitation     []*float64  `json:"precipitation"`
	PrecipProbability []*float64  `json:"precip_probability"`
	CloudCover        []*float64  `json:"cloud_cover"`
	WindSpeed         []*float64  `json:"wind_speed"`
	Humidity          []*float64  `json:"humidity"`
}

// DailyBundle holds the daily forecast as parallel arrays, same alignment
// rules as HourlyBundle.
type DailyBundle struct {
	Time                 []time.Time `json:"time"`
	TempMax              []*float64  `json:"temp_max"`
	TempMin              []*float64  `json:"temp_min"`
	PrecipSum            []*float64  `json:"precip_sum"`
	PrecipProbabilityMax []*float64  `json:"precip_probability_max"`
	WindSpeedMax         []*float64  `json:"wind_speed_max"`
	Sunrise              []time.Time `json:"sunrise"`
	Sunset               []time.Time `json:"sunset"`
}

// WeatherSnapshot is one fetched-and-cached bundle of hourly/daily data for a
// single location. It is immutable: every successful fetch builds a new
// snapshot that entirely replaces the previous cached one.
type WeatherSnapshot struct {
	Hourly      HourlyBundle `json:"hourly"`
	Daily       DailyBundle  `json:"daily"`
	FetchedAt   time.Time    `json:"fetched_at"`
	Coordinates Coordinates  `json:"coordinates"`
	DisplayName string       `json:"display_name"`
}

// Location returns the snapshot's resolved location.
func (s *WeatherSnapshot) Location() ResolvedLocation {
	return ResolvedLocation{Coordinates: s.Coordinates, DisplayName: s.DisplayName}
}

// Age reports how old the snapshot is at the given instant.
func (s *WeatherSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Value dereferences a sentinel pointer, degrading nil to zero.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
