package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/mcrocce/meteodash/internal/httputil"
	"github.com/mcrocce/meteodash/internal/metrics"
	"github.com/mcrocce/meteodash/internal/models"
)

const (
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	forecastDays       = 7

	hourlyFields = "temperature_2m,precipitation,precipitation_probability,cloud_cover,wind_speed_10m,relative_humidity_2m"
	dailyFields  = "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,wind_speed_10m_max,sunrise,sunset"
)

// ForecastData is the decoded payload of one forecast fetch. The resolver
// stamps it with a timestamp and display name to build a snapshot.
type ForecastData struct {
	Hourly models.HourlyBundle
	Daily  models.DailyBundle
}

type ForecastClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewForecastClient() *ForecastClient {
	return &ForecastClient{
		baseURL: defaultForecastURL,
		client:  httputil.NewClient(),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "forecast",
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// NewForecastClientWithURL is used by tests to point at a stub server.
func NewForecastClientWithURL(baseURL string) *ForecastClient {
	c := NewForecastClient()
	c.baseURL = baseURL
	return c
}

type forecastResponse struct {
	UTCOffsetSeconds int            `json:"utc_offset_seconds"`
	Hourly           hourlyPayload  `json:"hourly"`
	Daily            dailyPayload   `json:"daily"`
}

type hourlyPayload struct {
	Time                     []string   `json:"time"`
	Temperature2m            []*float64 `json:"temperature_2m"`
	Precipitation            []*float64 `json:"precipitation"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	CloudCover               []*float64 `json:"cloud_cover"`
	WindSpeed10m             []*float64 `json:"wind_speed_10m"`
	RelativeHumidity2m       []*float64 `json:"relative_humidity_2m"`
}

type dailyPayload struct {
	Time                        []string   `json:"time"`
	Temperature2mMax            []*float64 `json:"temperature_2m_max"`
	Temperature2mMin            []*float64 `json:"temperature_2m_min"`
	PrecipitationSum            []*float64 `json:"precipitation_sum"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	WindSpeed10mMax             []*float64 `json:"wind_speed_10m_max"`
	Sunrise                     []string   `json:"sunrise"`
	Sunset                      []string   `json:"sunset"`
}

// Fetch retrieves the 7-day forecast for the given coordinates. Transient
// upstream failures (429, 5xx) are retried with exponential backoff behind a
// circuit breaker; any other non-200 status fails immediately.
func (c *ForecastClient) Fetch(ctx context.Context, lat, lon float64) (*ForecastData, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("hourly", hourlyFields)
	params.Set("daily", dailyFields)
	params.Set("forecast_days", fmt.Sprintf("%d", forecastDays))
	params.Set("timezone", "auto")
	reqURL := c.baseURL + "?" + params.Encode()

	body, err := c.get(ctx, reqURL)
	if err != nil {
		metrics.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ForecastAPICallsTotal.WithLabelValues("ok").Inc()

	var data forecastResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("unmarshal forecast: %w", err)
	}

	return decodeForecast(&data)
}

func (c *ForecastClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	var body []byte
	operation := func() error {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return nil, backoff.Permanent(err)
			}

			resp, err := c.client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("fetch forecast: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				io.Copy(io.Discard, resp.Body)
				return nil, fmt.Errorf("fetch forecast: status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				b, _ := io.ReadAll(resp.Body)
				return nil, backoff.Permanent(fmt.Errorf("fetch forecast: status %d: %s", resp.StatusCode, string(b)))
			}

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, backoff.Permanent(fmt.Errorf("read body: %w", err))
			}
			return b, nil
		})
		if err != nil {
			if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
				return backoff.Permanent(fmt.Errorf("forecast circuit open: %w", err))
			}
			return err
		}
		body = result.([]byte)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

func decodeForecast(data *forecastResponse) (*ForecastData, error) {
	zone := time.FixedZone("local", data.UTCOffsetSeconds)

	hourlyTime, err := parseTimes(data.Hourly.Time, "2006-01-02T15:04", zone)
	if err != nil {
		return nil, fmt.Errorf("hourly time axis: %w", err)
	}
	dailyTime, err := parseTimes(data.Daily.Time, "2006-01-02", zone)
	if err != nil {
		return nil, fmt.Errorf("daily time axis: %w", err)
	}

	n := len(hourlyTime)
	hourly := models.HourlyBundle{
		Time:              hourlyTime,
		Temperature:       alignValues(data.Hourly.Temperature2m, n),
		Precipitation:     alignValues(data.Hourly.Precipitation, n),
		PrecipProbability: alignValues(data.Hourly.PrecipitationProbability, n),
		CloudCover:        alignValues(data.Hourly.CloudCover, n),
		WindSpeed:         alignValues(data.Hourly.WindSpeed10m, n),
		Humidity:          alignValues(data.Hourly.RelativeHumidity2m, n),
	}

	// Sunrise/sunset failures degrade to absent values; the tables render
	// without them.
	sunrise, _ := parseTimes(data.Daily.Sunrise, "2006-01-02T15:04", zone)
	sunset, _ := parseTimes(data.Daily.Sunset, "2006-01-02T15:04", zone)

	m := len(dailyTime)
	daily := models.DailyBundle{
		Time:                 dailyTime,
		TempMax:              alignValues(data.Daily.Temperature2mMax, m),
		TempMin:              alignValues(data.Daily.Temperature2mMin, m),
		PrecipSum:            alignValues(data.Daily.PrecipitationSum, m),
		PrecipProbabilityMax: alignValues(data.Daily.PrecipitationProbabilityMax, m),
		WindSpeedMax:         alignValues(data.Daily.WindSpeed10mMax, m),
		Sunrise:              sunrise,
		Sunset:               sunset,
	}

	return &ForecastData{Hourly: hourly, Daily: daily}, nil
}

func parseTimes(values []string, layout string, zone *time.Location) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for i, v := range values {
		t, err := time.ParseInLocation(layout, v, zone)
		if err != nil {
			return nil, fmt.Errorf("step %d: %q: %w", i, v, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// alignValues enforces the parallel-array invariant against the time axis:
// extra entries are dropped, missing tail entries become nil.
func alignValues(values []*float64, n int) []*float64 {
	if len(values) == n {
		return values
	}
	out := make([]*float64, n)
	copy(out, values)
	return out
}
