package api

import (
	"fmt"
	"time"

	"github.com/mcrocce/meteodash/internal/classify"
	"github.com/mcrocce/meteodash/internal/models"
	"github.com/mcrocce/meteodash/internal/resolver"
)

type weatherResponse struct {
	Location        models.ResolvedLocation `json:"location"`
	FetchedAt       time.Time               `json:"fetched_at"`
	FromCache       bool                    `json:"from_cache"`
	GeocodeFallback bool                    `json:"geocode_fallback"`

	Hours []hourView `json:"hours"`
	Days  []dayView  `json:"days"`

	Clothing string   `json:"clothing"`
	Fishing  int      `json:"fishing_score"`
	Sun      int      `json:"sun_score"`
	Moon     moonView `json:"moon"`
}

type hourView struct {
	Time          time.Time             `json:"time"`
	Temperature   string                `json:"temperature"`
	Precipitation string                `json:"precipitation"`
	WindSpeed     string                `json:"wind_speed"`
	CloudCover    string                `json:"cloud_cover"`
	Humidity      string                `json:"humidity"`
	Icon          classify.IconCategory `json:"icon"`
	Risk          riskView              `json:"risk"`
}

type dayView struct {
	Date      string    `json:"date"`
	TempMax   string    `json:"temp_max"`
	TempMin   string    `json:"temp_min"`
	PrecipSum string    `json:"precip_sum"`
	WindMax   string    `json:"wind_max"`
	Sunrise   string    `json:"sunrise"`
	Sunset    string    `json:"sunset"`
	Risk      riskView  `json:"risk"`
	Tracks    trackList `json:"tracks"`
}

type riskView struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

type trackView struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

type trackList struct {
	Heat trackView `json:"heat"`
	Cold trackView `json:"cold"`
	Wind trackView `json:"wind"`
	Rain trackView `json:"rain"`
}

type moonView struct {
	Phase        string `json:"phase"`
	Illumination int    `json:"illumination"`
}

// fmtValue renders a possibly absent reading. Missing data shows as "n/a",
// never as an error.
func fmtValue(p *float64, unit string) string {
	if p == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%s", *p, unit)
}

func fmtClock(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}
	return t.Format("15:04")
}

func buildWeatherResponse(res *resolver.Result, now time.Time, thresholds classify.Thresholds) weatherResponse {
	snap := res.Snapshot

	out := weatherResponse{
		Location:        snap.Location(),
		FetchedAt:       snap.FetchedAt,
		FromCache:       res.FromCache,
		GeocodeFallback: res.GeocodeFallback,
		Moon: moonView{
			Phase:        classify.MoonName(classify.Moon(now)),
			Illumination: classify.MoonIllumination(now),
		},
	}

	for i, ts := range snap.Hourly.Time {
		m := hourMetrics(&snap.Hourly, i)
		level := classify.Risk(
			models.Value(at(snap.Hourly.Temperature, i)),
			models.Value(at(snap.Hourly.Precipitation, i)),
			models.Value(at(snap.Hourly.WindSpeed, i)),
			false, thresholds,
		)
		out.Hours = append(out.Hours, hourView{
			Time:          ts,
			Temperature:   fmtValue(at(snap.Hourly.Temperature, i), "°C"),
			Precipitation: fmtValue(at(snap.Hourly.Precipitation, i), "mm"),
			WindSpeed:     fmtValue(at(snap.Hourly.WindSpeed, i), "km/h"),
			CloudCover:    fmtValue(at(snap.Hourly.CloudCover, i), "%"),
			Humidity:      fmtValue(at(snap.Hourly.Humidity, i), "%"),
			Icon:          classify.Icon(m, ts.Hour()),
			Risk:          riskViewFor(level),
		})
	}

	for i, ts := range snap.Daily.Time {
		tempMax := models.Value(at(snap.Daily.TempMax, i))
		precipSum := models.Value(at(snap.Daily.PrecipSum, i))
		windMax := models.Value(at(snap.Daily.WindSpeedMax, i))
		tempMin := models.Value(at(snap.Daily.TempMin, i))

		level := classify.Risk(tempMax, precipSum, windMax, true, thresholds)
		out.Days = append(out.Days, dayView{
			Date:      ts.Format("2006-01-02"),
			TempMax:   fmtValue(at(snap.Daily.TempMax, i), "°C"),
			TempMin:   fmtValue(at(snap.Daily.TempMin, i), "°C"),
			PrecipSum: fmtValue(at(snap.Daily.PrecipSum, i), "mm"),
			WindMax:   fmtValue(at(snap.Daily.WindSpeedMax, i), "km/h"),
			Sunrise:   fmtClock(timeAt(snap.Daily.Sunrise, i)),
			Sunset:    fmtClock(timeAt(snap.Daily.Sunset, i)),
			Risk:      riskViewFor(level),
			Tracks: trackList{
				Heat: trackViewFor(classify.Heat, tempMax),
				Cold: trackViewFor(classify.Cold, tempMin),
				Wind: trackViewFor(classify.Wind, windMax),
				Rain: trackViewFor(classify.Rain, precipSum),
			},
		})
	}

	// headline extras come from the current hour when it exists
	if i := currentHourIndex(snap.Hourly.Time, now); i >= 0 {
		m := hourMetrics(&snap.Hourly, i)
		out.Clothing = classify.ClothingSuggestion(
			models.Value(at(snap.Hourly.Temperature, i)),
			models.Value(at(snap.Hourly.Precipitation, i)),
		)
		out.Fishing = classify.FishingScore(m)
		out.Sun = classify.SunScore(m)
	}

	return out
}

func hourMetrics(h *models.HourlyBundle, i int) classify.Metrics {
	return classify.Metrics{
		TemperatureC:      at(h.Temperature, i),
		PrecipitationMM:   at(h.Precipitation, i),
		PrecipProbability: at(h.PrecipProbability, i),
		CloudCoverPct:     at(h.CloudCover, i),
		WindKmh:           at(h.WindSpeed, i),
	}
}

func riskViewFor(level classify.AlertLevel) riskView {
	return riskView{Level: level.String(), Description: classify.RiskDescription(level)}
}

func trackViewFor(track classify.HazardTrack, value float64) trackView {
	level := track.Level(value)
	return trackView{Name: track.Name, Level: int(level), Description: track.Description(level)}
}

func at(values []*float64, i int) *float64 {
	if i < 0 || i >= len(values) {
		return nil
	}
	return values[i]
}

func timeAt(values []time.Time, i int) time.Time {
	if i < 0 || i >= len(values) {
		return time.Time{}
	}
	return values[i]
}

func currentHourIndex(times []time.Time, now time.Time) int {
	for i, ts := range times {
		if !ts.After(now) && now.Sub(ts) < time.Hour {
			return i
		}
	}
	if len(times) > 0 {
		return 0
	}
	return -1
}
