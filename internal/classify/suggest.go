package classify

// ClothingSuggestion maps temperature and expected rain to a short outfit
// hint for the daily cards.
func ClothingSuggestion(tempC, precipMM float64) string {
	var base string
	switch {
	case tempC >= 28:
		base = "Light summer clothing"
	case tempC >= 20:
		base = "T-shirt weather, bring a light layer for the evening"
	case tempC >= 12:
		base = "Long sleeves and a jacket"
	case tempC >= 5:
		base = "Warm coat and scarf"
	default:
		base = "Heavy winter clothing, gloves and hat"
	}
	if precipMM >= 0.5 {
		return base + "; take an umbrella"
	}
	return base
}

// FishingScore rates how favourable conditions are for fishing on a 0-10
// scale. Calm, overcast, mild days with a touch of rain score best; wind
// and heavy rain ruin it.
func FishingScore(m Metrics) int {
	temp := deref(m.TemperatureC)
	wind := deref(m.WindKmh)
	cloud := deref(m.CloudCoverPct)
	precip := deref(m.PrecipitationMM)

	score := 5

	switch {
	case wind < 10:
		score += 2
	case wind < 20:
		score++
	case wind >= 35:
		score -= 3
	default:
		score--
	}

	// Fish feed more under cloud cover.
	switch {
	case cloud >= 50 && cloud < 90:
		score += 2
	case cloud >= 20:
		score++
	}

	switch {
	case precip >= 5:
		score -= 3
	case precip >= 0.5:
		score--
	case precip >= 0.1:
		score++ // drizzle is fine
	}

	if temp < 5 || temp > 32 {
		score -= 2
	}

	return clampScore(score)
}

// SunScore rates how favourable conditions are for sunbathing on a 0-10
// scale.
func SunScore(m Metrics) int {
	temp := deref(m.TemperatureC)
	wind := deref(m.WindKmh)
	cloud := deref(m.CloudCoverPct)
	precip := deref(m.PrecipitationMM)

	if precip >= 0.1 {
		return 0
	}

	score := 5

	switch {
	case cloud < 20:
		score += 3
	case cloud < 50:
		score++
	case cloud >= 80:
		score -= 4
	default:
		score -= 2
	}

	switch {
	case temp >= 24 && temp <= 32:
		score += 2
	case temp >= 18:
		score++
	case temp < 12:
		score -= 4
	default:
		score -= 2
	}

	if wind >= 25 {
		score -= 2
	}

	return clampScore(score)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}
