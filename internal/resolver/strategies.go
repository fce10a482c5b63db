package resolver

import (
	"context"
	"fmt"
	"log"

	"github.com/mcrocce/meteodash/internal/models"
)

// A locateStrategy inspects the request and either claims it (non-nil
// location) or passes. Strategies run in a fixed precedence order; the first
// claim wins.
type locateStrategy func(ctx context.Context, req Request) (*models.ResolvedLocation, string)

func (r *Resolver) strategies() []locateStrategy {
	return []locateStrategy{
		r.fromCoords,
		r.fromGeocode,
		r.fromPreferred,
		r.fromDefault,
	}
}

// locate runs the fallback chain and always produces a target location.
func (r *Resolver) locate(ctx context.Context, req Request) (loc models.ResolvedLocation, source string, geocodeFallback bool) {
	for _, strategy := range r.strategies() {
		target, name := strategy(ctx, req)
		if target == nil {
			continue
		}
		// A named request that was not settled by geocoding means the
		// geocoder failed or found nothing and a later strategy stepped in.
		geocodeFallback = req.Name != "" && req.Coords == nil && name != "geocode"
		return *target, name, geocodeFallback
	}
	// fromDefault always claims; this is unreachable.
	return DefaultLocation, "default", false
}

func (r *Resolver) fromCoords(ctx context.Context, req Request) (*models.ResolvedLocation, string) {
	if req.Coords == nil {
		return nil, ""
	}
	return &models.ResolvedLocation{
		Coordinates: *req.Coords,
		DisplayName: fmt.Sprintf("%.4f, %.4f", req.Coords.Latitude, req.Coords.Longitude),
	}, "coords"
}

func (r *Resolver) fromGeocode(ctx context.Context, req Request) (*models.ResolvedLocation, string) {
	if req.Name == "" {
		return nil, ""
	}
	results, err := r.geocoder.Search(ctx, req.Name, 1)
	if err != nil {
		log.Printf("resolver: geocode %q: %v", req.Name, err)
		return nil, ""
	}
	if len(results) == 0 {
		log.Printf("resolver: geocode %q: no matches", req.Name)
		return nil, ""
	}
	return &models.ResolvedLocation{
		Coordinates: models.Coordinates{Latitude: results[0].Latitude, Longitude: results[0].Longitude},
		DisplayName: results[0].DisplayName(),
	}, "geocode"
}

func (r *Resolver) fromPreferred(ctx context.Context, req Request) (*models.ResolvedLocation, string) {
	preferred, err := r.store.GetPreferredLocation()
	if err != nil {
		log.Printf("resolver: read preferred location: %v", err)
		return nil, ""
	}
	if preferred == nil {
		return nil, ""
	}
	return preferred, "preferred"
}

func (r *Resolver) fromDefault(ctx context.Context, req Request) (*models.ResolvedLocation, string) {
	loc := DefaultLocation
	return &loc, "default"
}
