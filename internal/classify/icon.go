package classify

// IconCategory represents a categorized weather state for a single
// observation or forecast step.
type IconCategory string

const (
	IconClear        IconCategory = "clear"
	IconMostlyClear  IconCategory = "mostly_clear"
	IconCloudy       IconCategory = "cloudy"
	IconOvercast     IconCategory = "overcast"
	IconLightRain    IconCategory = "light_rain"
	IconModerateRain IconCategory = "moderate_rain"
	IconHeavyRain    IconCategory = "heavy_rain"
	IconThunderstorm IconCategory = "thunderstorm"
	IconNightClear   IconCategory = "night_clear"
	IconSnow         IconCategory = "snow"
	IconUnknown      IconCategory = "unknown"
)

// Metrics bundles the raw values feeding icon classification. Pointer fields
// carry the parallel-array null sentinel: nil means "not reported" and is
// treated as zero, never as an error.
type Metrics struct {
	PrecipitationMM   *float64
	CloudCoverPct     *float64
	WindKmh           *float64
	PrecipProbability *float64
	TemperatureC      *float64
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Icon maps raw metrics to an icon category. Rules are evaluated in a fixed
// priority order and the first match wins: precipitation forms beat wind
// beats cloud cover. hour is the observation's local hour [0,24) and only
// affects the night override.
func Icon(m Metrics, hour int) IconCategory {
	precip := deref(m.PrecipitationMM)
	cloud := deref(m.CloudCoverPct)
	wind := deref(m.WindKmh)
	prob := deref(m.PrecipProbability)
	temp := deref(m.TemperatureC)

	var cat IconCategory
	switch {
	case precip >= 0.1 && temp < 1:
		cat = IconSnow
	case prob >= 70 && wind >= 30:
		cat = IconThunderstorm
	case precip >= 5.0:
		cat = IconHeavyRain
	case precip >= 0.5:
		cat = IconModerateRain
	case precip >= 0.1:
		cat = IconLightRain
	case cloud >= 80:
		cat = IconOvercast
	case cloud >= 50:
		cat = IconCloudy
	case cloud >= 20:
		cat = IconMostlyClear
	default:
		cat = IconClear
	}

	// Night override only demotes calm-sky categories; precipitation forms
	// keep their icon around the clock.
	if isNight(hour) {
		switch cat {
		case IconClear, IconMostlyClear, IconCloudy:
			return IconNightClear
		}
	}
	return cat
}

func isNight(hour int) bool {
	return hour >= 18 || hour < 6
}
