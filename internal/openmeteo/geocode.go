package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mcrocce/meteodash/internal/httputil"
	"github.com/mcrocce/meteodash/internal/metrics"
	"github.com/mcrocce/meteodash/internal/models"
)

const defaultGeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"

type GeocodeClient struct {
	baseURL string
	client  *http.Client
}

func NewGeocodeClient() *GeocodeClient {
	return &GeocodeClient{
		baseURL: defaultGeocodeURL,
		client:  httputil.NewClient(),
	}
}

// NewGeocodeClientWithURL is used by tests to point at a stub server.
func NewGeocodeClientWithURL(baseURL string) *GeocodeClient {
	return &GeocodeClient{
		baseURL: baseURL,
		client:  httputil.NewClient(),
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

// Search resolves a place name to candidate coordinates. A name with no
// matches returns an empty slice, not an error.
func (c *GeocodeClient) Search(ctx context.Context, query string, count int) ([]models.GeocodeResult, error) {
	if count <= 0 {
		count = 1
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("language", "en")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.GeocodeAPICallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeocodeAPICallsTotal.WithLabelValues("error").Inc()
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("geocode %q: status %d", query, resp.StatusCode)
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		metrics.GeocodeAPICallsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("geocode %q: decode: %w", query, err)
	}
	metrics.GeocodeAPICallsTotal.WithLabelValues("ok").Inc()

	results := make([]models.GeocodeResult, 0, len(data.Results))
	for _, r := range data.Results {
		results = append(results, models.GeocodeResult{
			Name:      r.Name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Country:   r.Country,
			Admin1:    r.Admin1,
		})
	}
	return results, nil
}
