package resolver

import (
	"context"
	"sync"
)

// flightGroup coalesces concurrent lookups for the same key into one upstream
// call. Callers that arrive while a fetch is in flight wait for its result
// instead of starting their own.
type flightGroup struct {
	mu     sync.Mutex
	flights map[string]*flight
}

type flight struct {
	done chan struct{}
	res  *Result
	err  error
}

func newFlightGroup() *flightGroup {
	return &flightGroup{flights: make(map[string]*flight)}
}

func (g *flightGroup) do(ctx context.Context, key string, fn func() (*Result, error)) (*Result, error) {
	g.mu.Lock()
	if f, ok := g.flights[key]; ok {
		g.mu.Unlock()
		select {
		case <-f.done:
			return f.res, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &flight{done: make(chan struct{})}
	g.flights[key] = f
	g.mu.Unlock()

	f.res, f.err = fn()

	g.mu.Lock()
	delete(g.flights, key)
	g.mu.Unlock()
	close(f.done)

	return f.res, f.err
}
