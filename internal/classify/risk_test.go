package classify

import "testing"

func TestRiskDaily(t *testing.T) {
	tests := []struct {
		name     string
		tempC    float64
		precipMM float64
		windKmh  float64
		want     AlertLevel
	}{
		{"calm mild day", 18, 0, 5, LevelOptimal},
		{"critical wind", 18, 0, 55, LevelCritical},
		{"critical precip", 18, 60, 5, LevelCritical},
		{"alert wind", 18, 0, 32, LevelAlert},
		{"alert precip", 18, 35, 5, LevelAlert},
		{"freezing is alert", -2, 0, 5, LevelAlert},
		{"exactly minus one is alert", -1, 0, 5, LevelAlert},
		{"caution wind", 18, 0, 22, LevelCaution},
		{"caution precip", 18, 21, 5, LevelCaution},
		{"cold but not freezing is caution", 3, 0, 5, LevelCaution},
		{"four degrees exactly is optimal", 4, 0, 5, LevelOptimal},
		{"wind at critical boundary", 18, 0, 50, LevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Risk(tt.tempC, tt.precipMM, tt.windKmh, true, DefaultThresholds)
			if got != tt.want {
				t.Errorf("Risk(daily) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiskHourly(t *testing.T) {
	tests := []struct {
		name     string
		tempC    float64
		precipMM float64
		windKmh  float64
		want     AlertLevel
	}{
		{"calm hour", 18, 0, 5, LevelOptimal},
		{"critical hourly precip", 18, 16, 5, LevelCritical},
		{"alert hourly precip", 18, 11, 5, LevelAlert},
		{"caution hourly precip", 18, 6, 5, LevelCaution},
		{"daily cutoff does not apply hourly", 18, 20, 5, LevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Risk(tt.tempC, tt.precipMM, tt.windKmh, false, DefaultThresholds)
			if got != tt.want {
				t.Errorf("Risk(hourly) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRiskFirstMatchWins(t *testing.T) {
	// Wind alone is caution, cold alone is alert: the higher level must win
	// because rules are checked top-down.
	got := Risk(-3, 0, 22, true, DefaultThresholds)
	if got != LevelAlert {
		t.Errorf("Risk() = %v, want %v", got, LevelAlert)
	}
}

func TestRiskMonotonicInWind(t *testing.T) {
	prev := LevelOptimal
	for wind := 0.0; wind <= 80; wind += 0.5 {
		got := Risk(18, 0, wind, true, DefaultThresholds)
		if got < prev {
			t.Fatalf("risk decreased from %v to %v at wind %.1f", prev, got, wind)
		}
		prev = got
	}
}

func TestAlertLevelString(t *testing.T) {
	tests := []struct {
		level AlertLevel
		want  string
	}{
		{LevelOptimal, "optimal"},
		{LevelCaution, "caution"},
		{LevelAlert, "alert"},
		{LevelCritical, "critical"},
		{AlertLevel(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("AlertLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
