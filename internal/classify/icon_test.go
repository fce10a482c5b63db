package classify

import "testing"

func f(v float64) *float64 { return &v }

func TestIcon(t *testing.T) {
	tests := []struct {
		name string
		m    Metrics
		hour int
		want IconCategory
	}{
		{
			name: "clear afternoon",
			m:    Metrics{PrecipitationMM: f(0), CloudCoverPct: f(5), WindKmh: f(10), PrecipProbability: f(0), TemperatureC: f(20)},
			hour: 14,
			want: IconClear,
		},
		{
			name: "clear night",
			m:    Metrics{PrecipitationMM: f(0), CloudCoverPct: f(5), WindKmh: f(10), PrecipProbability: f(0), TemperatureC: f(20)},
			hour: 22,
			want: IconNightClear,
		},
		{
			name: "heavy rain beats cloud cover",
			m:    Metrics{PrecipitationMM: f(6), CloudCoverPct: f(90), WindKmh: f(10), PrecipProbability: f(80), TemperatureC: f(10)},
			hour: 14,
			want: IconHeavyRain,
		},
		{
			name: "snow beats everything when cold",
			m:    Metrics{PrecipitationMM: f(0.2), CloudCoverPct: f(10), WindKmh: f(5), PrecipProbability: f(10), TemperatureC: f(-2)},
			hour: 14,
			want: IconSnow,
		},
		{
			name: "thunderstorm from probability and wind",
			m:    Metrics{PrecipitationMM: f(0), CloudCoverPct: f(95), WindKmh: f(40), PrecipProbability: f(85), TemperatureC: f(18)},
			hour: 14,
			want: IconThunderstorm,
		},
		{
			name: "snow beats thunderstorm",
			m:    Metrics{PrecipitationMM: f(0.3), CloudCoverPct: f(95), WindKmh: f(40), PrecipProbability: f(85), TemperatureC: f(0)},
			hour: 14,
			want: IconSnow,
		},
		{
			name: "moderate rain",
			m:    Metrics{PrecipitationMM: f(1.5), CloudCoverPct: f(70), WindKmh: f(12), PrecipProbability: f(60), TemperatureC: f(8)},
			hour: 10,
			want: IconModerateRain,
		},
		{
			name: "light rain",
			m:    Metrics{PrecipitationMM: f(0.2), CloudCoverPct: f(60), WindKmh: f(12), PrecipProbability: f(40), TemperatureC: f(8)},
			hour: 10,
			want: IconLightRain,
		},
		{
			name: "overcast",
			m:    Metrics{PrecipitationMM: f(0), CloudCoverPct: f(85), WindKmh: f(5), PrecipProbability: f(0), TemperatureC: f(15)},
			hour: 12,
			want: IconOvercast,
		},
		{
			name: "cloudy",
			m:    Metrics{PrecipitationMM: f(0), CloudCoverPct: f(60), WindKmh: f(5), PrecipProbability: f(0), TemperatureC: f(15)},
			hour: 12,
			want: IconCloudy,
		},
		{
			name: "mostly clear",
			m:    Metrics{PrecipitationMM: f(0), CloudCoverPct: f(30), WindKmh: f(5), PrecipProbability: f(0), TemperatureC: f(15)},
			hour: 12,
			want: IconMostlyClear,
		},
		{
			name: "nil metrics degrade to clear",
			m:    Metrics{},
			hour: 12,
			want: IconClear,
		},
		{
			name: "nil metrics at night degrade to night clear",
			m:    Metrics{},
			hour: 3,
			want: IconNightClear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Icon(tt.m, tt.hour)
			if got != tt.want {
				t.Errorf("Icon() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIconNightOverrideNeverDemotesPrecipitation(t *testing.T) {
	precipForms := []Metrics{
		{PrecipitationMM: f(0.2), TemperatureC: f(-2)},                                              // snow
		{PrecipProbability: f(80), WindKmh: f(35), CloudCoverPct: f(90), TemperatureC: f(15)},        // thunderstorm
		{PrecipitationMM: f(6), CloudCoverPct: f(90), TemperatureC: f(10)},                          // heavy rain
		{PrecipitationMM: f(1), CloudCoverPct: f(70), TemperatureC: f(10)},                          // moderate rain
		{PrecipitationMM: f(0.2), CloudCoverPct: f(60), TemperatureC: f(10), PrecipProbability: f(30)}, // light rain
	}

	for _, m := range precipForms {
		day := Icon(m, 12)
		night := Icon(m, 23)
		if day != night {
			t.Errorf("night override changed %v to %v", day, night)
		}
		if night == IconNightClear {
			t.Errorf("precipitation form demoted to night clear: %+v", m)
		}
	}
}

func TestIconIsDeterministic(t *testing.T) {
	m := Metrics{PrecipitationMM: f(0.4), CloudCoverPct: f(45), WindKmh: f(18), PrecipProbability: f(55), TemperatureC: f(7)}
	first := Icon(m, 9)
	for i := 0; i < 100; i++ {
		if got := Icon(m, 9); got != first {
			t.Fatalf("Icon() not deterministic: %v then %v", first, got)
		}
	}
}

func TestIsNight(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		want := hour >= 18 || hour < 6
		if got := isNight(hour); got != want {
			t.Errorf("isNight(%d) = %v, want %v", hour, got, want)
		}
	}
}
