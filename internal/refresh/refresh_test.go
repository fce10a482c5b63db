package refresh

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/mcrocce/meteodash/internal/openmeteo"
	"github.com/mcrocce/meteodash/internal/resolver"
	"github.com/mcrocce/meteodash/internal/store"
)

const stubForecastBody = `{
	"utc_offset_seconds": 0,
	"hourly": {
		"time": ["2026-08-28T12:00"],
		"temperature_2m": [22.0],
		"precipitation": [0],
		"precipitation_probability": [0],
		"cloud_cover": [10],
		"wind_speed_10m": [5.0],
		"relative_humidity_2m": [50]
	},
	"daily": {
		"time": ["2026-08-28"],
		"temperature_2m_max": [26.0],
		"temperature_2m_min": [15.0],
		"precipitation_sum": [0],
		"precipitation_probability_max": [0],
		"wind_speed_10m_max": [12.0],
		"sunrise": ["2026-08-28T06:31"],
		"sunset": ["2026-08-28T20:02"]
	}
}`

func setupScheduler(t *testing.T) (*Scheduler, *store.Store, *int) {
	t.Helper()

	var calls int
	forecastSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(stubForecastBody))
	}))
	t.Cleanup(forecastSrv.Close)

	geocodeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(geocodeSrv.Close)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	require.NoError(t, st.Migrate())

	rs := resolver.New(
		openmeteo.NewForecastClientWithURL(forecastSrv.URL),
		openmeteo.NewGeocodeClientWithURL(geocodeSrv.URL),
		st,
	)
	return New(rs, 30*time.Minute), st, &calls
}

func TestRunFetchesWhenCacheEmpty(t *testing.T) {
	s, st, calls := setupScheduler(t)

	s.run()
	assert.Equal(t, 1, *calls)

	snap, err := st.GetSnapshot()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Padova", snap.DisplayName)
}

func TestRunIsNoOpWhileCacheFresh(t *testing.T) {
	s, _, calls := setupScheduler(t)

	s.run()
	require.Equal(t, 1, *calls)

	// second run within the freshness window must not touch the network
	s.run()
	assert.Equal(t, 1, *calls)
}
