// Package resolver decides which location to show weather for and keeps the
// cached snapshot warm. A request flows through an ordered chain: fresh cache,
// explicit coordinates, place-name geocoding, the persisted preferred
// location, and finally a hardcoded default.
package resolver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mcrocce/meteodash/internal/metrics"
	"github.com/mcrocce/meteodash/internal/models"
	"github.com/mcrocce/meteodash/internal/openmeteo"
	"github.com/mcrocce/meteodash/internal/store"
)

// SnapshotTTL is how long a cached snapshot stays usable. A snapshot aged
// exactly at the limit counts as expired.
const SnapshotTTL = 2 * time.Hour

var (
	// DefaultLocation is the fallback of last resort.
	DefaultLocation = models.ResolvedLocation{
		Coordinates: models.Coordinates{Latitude: 45.4064, Longitude: 11.8768},
		DisplayName: "Padova",
	}

	ErrForecastFetch = errors.New("forecast fetch failed")
)

type ForecastFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*openmeteo.ForecastData, error)
}

type Geocoder interface {
	Search(ctx context.Context, query string, count int) ([]models.GeocodeResult, error)
}

type Storage interface {
	GetSnapshot() (*models.WeatherSnapshot, error)
	PutSnapshot(*models.WeatherSnapshot) error
	GetPreferredLocation() (*models.ResolvedLocation, error)
	SetPreferredLocation(models.ResolvedLocation) error
	LogFetch(store.FetchLogEntry) error
}

// Request selects a location. Zero value means "whatever I was looking at
// last". Name and Coords are mutually exclusive; Coords wins when both are set.
type Request struct {
	Name   string
	Coords *models.Coordinates
}

func (r Request) key() string {
	switch {
	case r.Coords != nil:
		return fmt.Sprintf("coords:%.4f:%.4f", r.Coords.Latitude, r.Coords.Longitude)
	case r.Name != "":
		return "name:" + strings.ToLower(strings.TrimSpace(r.Name))
	default:
		return "default"
	}
}

// Result carries the snapshot plus how it was obtained.
type Result struct {
	Snapshot *models.WeatherSnapshot

	// FromCache is true when no network call was made.
	FromCache bool

	// GeocodeFallback is true when a place name could not be geocoded and
	// the resolver fell through to a persisted or default location.
	GeocodeFallback bool
}

type Resolver struct {
	forecast ForecastFetcher
	geocoder Geocoder
	store    Storage
	clock    clockwork.Clock

	group *flightGroup
}

func New(forecast ForecastFetcher, geocoder Geocoder, st Storage) *Resolver {
	return NewWithClock(forecast, geocoder, st, clockwork.NewRealClock())
}

func NewWithClock(forecast ForecastFetcher, geocoder Geocoder, st Storage, clock clockwork.Clock) *Resolver {
	return &Resolver{
		forecast: forecast,
		geocoder: geocoder,
		store:    st,
		clock:    clock,
		group:    newFlightGroup(),
	}
}

// Resolve returns a weather snapshot for the requested location. Concurrent
// calls for the same request share a single upstream fetch; requests for
// different locations proceed independently.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	start := r.clock.Now()
	res, err := r.group.do(ctx, req.key(), func() (*Result, error) {
		return r.resolve(ctx, req)
	})
	metrics.ResolveLatency.Observe(r.clock.Since(start).Seconds())
	return res, err
}

func (r *Resolver) resolve(ctx context.Context, req Request) (*Result, error) {
	cached, err := r.store.GetSnapshot()
	if err != nil {
		log.Printf("resolver: read snapshot cache: %v", err)
	}

	if fresh := r.freshSnapshot(cached, req); fresh != nil {
		metrics.CacheEventsTotal.WithLabelValues("hit").Inc()
		return &Result{Snapshot: fresh, FromCache: true}, nil
	}
	if cached != nil {
		metrics.CacheEventsTotal.WithLabelValues("expired").Inc()
	} else {
		metrics.CacheEventsTotal.WithLabelValues("miss").Inc()
	}

	target, source, geocodeFallback := r.locate(ctx, req)

	snap, err := r.fetchSnapshot(ctx, target)
	if err != nil {
		r.logFetch(source, target, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrForecastFetch, target.DisplayName, err)
	}
	r.logFetch(source, target, nil)

	// A successful fetch always becomes the new cache and the new
	// preferred location. A failed one touches neither.
	if err := r.store.PutSnapshot(snap); err != nil {
		log.Printf("resolver: persist snapshot: %v", err)
	}
	if err := r.store.SetPreferredLocation(target); err != nil {
		log.Printf("resolver: persist preferred location: %v", err)
	}

	return &Result{Snapshot: snap, GeocodeFallback: geocodeFallback}, nil
}

// freshSnapshot reports whether the cached snapshot can serve the request
// without touching the network.
func (r *Resolver) freshSnapshot(cached *models.WeatherSnapshot, req Request) *models.WeatherSnapshot {
	if cached == nil || cached.Age(r.clock.Now()) >= SnapshotTTL {
		return nil
	}
	switch {
	case req.Coords != nil:
		if cached.Coordinates == *req.Coords {
			return cached
		}
	case req.Name != "":
		if cached.Location().NameMatches(req.Name) {
			return cached
		}
	default:
		return cached
	}
	return nil
}

func (r *Resolver) fetchSnapshot(ctx context.Context, target models.ResolvedLocation) (*models.WeatherSnapshot, error) {
	data, err := r.forecast.Fetch(ctx, target.Coordinates.Latitude, target.Coordinates.Longitude)
	if err != nil {
		return nil, err
	}
	return &models.WeatherSnapshot{
		Hourly:      data.Hourly,
		Daily:       data.Daily,
		FetchedAt:   r.clock.Now(),
		Coordinates: target.Coordinates,
		DisplayName: target.DisplayName,
	}, nil
}

func (r *Resolver) logFetch(source string, target models.ResolvedLocation, fetchErr error) {
	entry := store.FetchLogEntry{
		StartedAt:   r.clock.Now(),
		Latitude:    sql.NullFloat64{Float64: target.Coordinates.Latitude, Valid: true},
		Longitude:   sql.NullFloat64{Float64: target.Coordinates.Longitude, Valid: true},
		DisplayName: sql.NullString{String: target.DisplayName, Valid: true},
		Source:      source,
		Status:      "ok",
	}
	if fetchErr == nil {
		entry.CompletedAt = sql.NullTime{Time: r.clock.Now(), Valid: true}
	} else {
		entry.Status = "error"
		entry.Error = sql.NullString{String: fetchErr.Error(), Valid: true}
	}
	if err := r.store.LogFetch(entry); err != nil {
		log.Printf("resolver: log fetch: %v", err)
	}
}
