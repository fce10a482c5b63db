package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcrocce/meteodash/internal/classify"
	"github.com/mcrocce/meteodash/internal/metrics"
	"github.com/mcrocce/meteodash/internal/models"
	"github.com/mcrocce/meteodash/internal/resolver"
	"github.com/mcrocce/meteodash/internal/store"
)

type Server struct {
	resolver   *resolver.Resolver
	geocoder   resolver.Geocoder
	store      *store.Store
	port       string
	clock      clockwork.Clock
	thresholds classify.Thresholds
}

func NewServer(rs *resolver.Resolver, geocoder resolver.Geocoder, st *store.Store, port string) *Server {
	return &Server{
		resolver:   rs,
		geocoder:   geocoder,
		store:      st,
		port:       port,
		clock:      clockwork.NewRealClock(),
		thresholds: classify.DefaultThresholds,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/weather", s.instrument("/api/weather", s.handleWeather))
	mux.HandleFunc("/api/search", s.instrument("/api/search", s.handleSearch))
	mux.HandleFunc("/api/fetches", s.instrument("/api/fetches", s.handleFetches))
	mux.HandleFunc("/health", s.instrument("/health", s.handleHealth))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("api: listening on :%s", s.port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.HTTPRequestsTotal.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
	}
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.resolver.Resolve(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, buildWeatherResponse(res, s.clock.Now(), s.thresholds))
}

func requestFromQuery(r *http.Request) (resolver.Request, error) {
	q := r.URL.Query()
	req := resolver.Request{Name: q.Get("q")}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" && lonStr == "" {
		return req, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return req, fmt.Errorf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return req, fmt.Errorf("invalid lon %q", lonStr)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return req, fmt.Errorf("coordinates out of range: %v, %v", lat, lon)
	}
	req.Coords = &models.Coordinates{Latitude: lat, Longitude: lon}
	return req, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing q parameter"))
		return
	}

	results, err := s.geocoder.Search(r.Context(), query, 5)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	type suggestion struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	suggestions := make([]suggestion, 0, len(results))
	for _, res := range results {
		suggestions = append(suggestions, suggestion{
			Name:      res.DisplayName(),
			Latitude:  res.Latitude,
			Longitude: res.Longitude,
		})
	}
	writeJSON(w, map[string]any{"results": suggestions})
}

func (s *Server) handleFetches(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.RecentFetches(50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type fetchView struct {
		StartedAt   time.Time `json:"started_at"`
		DisplayName string    `json:"display_name,omitempty"`
		Source      string    `json:"source"`
		Status      string    `json:"status"`
		Error       string    `json:"error,omitempty"`
	}
	views := make([]fetchView, 0, len(entries))
	for _, e := range entries {
		views = append(views, fetchView{
			StartedAt:   e.StartedAt,
			DisplayName: e.DisplayName.String,
			Source:      e.Source,
			Status:      e.Status,
			Error:       e.Error.String,
		})
	}
	writeJSON(w, map[string]any{"fetches": views})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := s.store.MigrationVersion()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, map[string]any{"status": "ok", "schema_version": version})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
