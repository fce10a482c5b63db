package classify

import (
	"strings"
	"testing"
	"time"
)

func TestClothingSuggestion(t *testing.T) {
	tests := []struct {
		name     string
		tempC    float64
		precipMM float64
		contains string
	}{
		{"hot day", 30, 0, "summer"},
		{"mild day", 22, 0, "T-shirt"},
		{"cool day", 15, 0, "jacket"},
		{"cold day", 7, 0, "coat"},
		{"freezing day", -3, 0, "winter"},
		{"rainy day adds umbrella", 15, 2, "umbrella"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClothingSuggestion(tt.tempC, tt.precipMM)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("ClothingSuggestion(%.0f, %.0f) = %q, want substring %q", tt.tempC, tt.precipMM, got, tt.contains)
			}
		})
	}
}

func TestFishingScore(t *testing.T) {
	ideal := Metrics{TemperatureC: f(18), WindKmh: f(5), CloudCoverPct: f(60), PrecipitationMM: f(0.2)}
	awful := Metrics{TemperatureC: f(2), WindKmh: f(45), CloudCoverPct: f(0), PrecipitationMM: f(8)}

	hi := FishingScore(ideal)
	lo := FishingScore(awful)
	if hi <= lo {
		t.Errorf("ideal fishing day scored %d, awful day %d", hi, lo)
	}
	if hi < 8 {
		t.Errorf("ideal fishing day scored %d, want >= 8", hi)
	}
	if lo > 2 {
		t.Errorf("awful fishing day scored %d, want <= 2", lo)
	}
}

func TestSunScore(t *testing.T) {
	ideal := Metrics{TemperatureC: f(27), WindKmh: f(5), CloudCoverPct: f(5), PrecipitationMM: f(0)}
	if got := SunScore(ideal); got < 9 {
		t.Errorf("ideal sun day scored %d, want >= 9", got)
	}

	rainy := Metrics{TemperatureC: f(27), WindKmh: f(5), CloudCoverPct: f(5), PrecipitationMM: f(1)}
	if got := SunScore(rainy); got != 0 {
		t.Errorf("rainy day scored %d, want 0", got)
	}
}

func TestScoresStayInRange(t *testing.T) {
	values := []*float64{nil, f(-20), f(0), f(5), f(15), f(30), f(50), f(100)}
	for _, temp := range values {
		for _, wind := range values {
			for _, cloud := range values {
				for _, precip := range values {
					m := Metrics{TemperatureC: temp, WindKmh: wind, CloudCoverPct: cloud, PrecipitationMM: precip}
					if s := FishingScore(m); s < 0 || s > 10 {
						t.Fatalf("FishingScore out of range: %d for %+v", s, m)
					}
					if s := SunScore(m); s < 0 || s > 10 {
						t.Fatalf("SunScore out of range: %d for %+v", s, m)
					}
				}
			}
		}
	}
}

func TestMoonPhases(t *testing.T) {
	// referenceNewMoon is a new moon by definition.
	if got := Moon(referenceNewMoon); got != MoonNew {
		t.Errorf("Moon(reference) = %v, want %v", got, MoonNew)
	}

	// Half a cycle later the moon is full.
	full := referenceNewMoon.Add(time.Duration(lunarCycle / 2 * 24 * float64(time.Hour)))
	if got := Moon(full); got != MoonFull {
		t.Errorf("Moon(reference + half cycle) = %v, want %v", got, MoonFull)
	}

	if ill := MoonIllumination(referenceNewMoon); ill > 2 {
		t.Errorf("new moon illumination = %d, want ~0", ill)
	}
	if ill := MoonIllumination(full); ill < 98 {
		t.Errorf("full moon illumination = %d, want ~100", ill)
	}
}

func TestMoonNameCoversAllPhases(t *testing.T) {
	phases := []MoonPhase{
		MoonNew, MoonWaxingCrescent, MoonFirstQuarter, MoonWaxingGibbous,
		MoonFull, MoonWaningGibbous, MoonLastQuarter, MoonWaningCrescent,
	}
	for _, p := range phases {
		if MoonName(p) == "Moon" || MoonName(p) == "" {
			t.Errorf("MoonName(%v) missing dedicated name", p)
		}
	}
}
