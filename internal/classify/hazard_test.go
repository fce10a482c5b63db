package classify

import "testing"

func TestHazardTrackLevels(t *testing.T) {
	tests := []struct {
		name  string
		track HazardTrack
		value float64
		want  TrackLevel
	}{
		{"heat baseline", Heat, 20, TrackBaseline},
		{"heat yellow", Heat, 28, TrackYellow},
		{"heat orange", Heat, 33, TrackOrange},
		{"heat red", Heat, 40, TrackRed},
		{"heat red boundary", Heat, 37, TrackRed},

		{"cold baseline", Cold, 15, TrackBaseline},
		{"cold yellow", Cold, 4, TrackYellow},
		{"cold orange", Cold, -1, TrackOrange},
		{"cold red", Cold, -8, TrackRed},
		{"cold orange boundary", Cold, 0, TrackOrange},

		{"wind baseline", Wind, 10, TrackBaseline},
		{"wind yellow", Wind, 25, TrackYellow},
		{"wind orange", Wind, 40, TrackOrange},
		{"wind red", Wind, 55, TrackRed},

		{"rain baseline", Rain, 1, TrackBaseline},
		{"rain yellow", Rain, 8, TrackYellow},
		{"rain orange", Rain, 20, TrackOrange},
		{"rain red", Rain, 35, TrackRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.track.Level(tt.value)
			if got != tt.want {
				t.Errorf("%s.Level(%.1f) = %v, want %v", tt.track.Name, tt.value, got, tt.want)
			}
		})
	}
}

func TestColdTrackMonotonicInTemperature(t *testing.T) {
	// As temperature increases the cold level must never increase.
	prev := TrackRed
	for temp := -20.0; temp <= 30; temp += 0.5 {
		got := Cold.Level(temp)
		if got > prev {
			t.Fatalf("cold level rose from %d to %d at %.1f°C", prev, got, temp)
		}
		prev = got
	}
}

func TestHeatTrackMonotonicInTemperature(t *testing.T) {
	prev := TrackBaseline
	for temp := 0.0; temp <= 50; temp += 0.5 {
		got := Heat.Level(temp)
		if got < prev {
			t.Fatalf("heat level fell from %d to %d at %.1f°C", prev, got, temp)
		}
		prev = got
	}
}

func TestHazardDescriptions(t *testing.T) {
	for _, track := range []HazardTrack{Heat, Cold, Wind, Rain} {
		if track.Description(TrackBaseline) != "" {
			t.Errorf("%s baseline should have no description", track.Name)
		}
		for _, level := range []TrackLevel{TrackYellow, TrackOrange, TrackRed} {
			if track.Description(level) == "" {
				t.Errorf("%s level %d missing description", track.Name, level)
			}
		}
	}
}
