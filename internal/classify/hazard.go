package classify

// TrackLevel is the per-hazard ordinal: 1 baseline through 4 red.
type TrackLevel int

const (
	TrackBaseline TrackLevel = 1 + iota
	TrackYellow
	TrackOrange
	TrackRed
)

// HazardTrack classifies one risk dimension with three fixed cutoffs. For
// Heat, Wind and Rain higher values are worse; Cold is the single inverted
// track where lower values are worse.
type HazardTrack struct {
	Name     string
	Yellow   float64
	Orange   float64
	Red      float64
	Inverted bool

	// Descriptions for levels 2..4; the baseline level has none.
	YellowDesc string
	OrangeDesc string
	RedDesc    string
}

var (
	Heat = HazardTrack{
		Name:       "heat",
		Yellow:     27,
		Orange:     32,
		Red:        37,
		YellowDesc: "Warm: stay hydrated",
		OrangeDesc: "Hot: limit midday exposure",
		RedDesc:    "Extreme heat: avoid outdoor activity",
	}

	Cold = HazardTrack{
		Name:       "cold",
		Yellow:     5,
		Orange:     0,
		Red:        -5,
		Inverted:   true,
		YellowDesc: "Chilly: dress in layers",
		OrangeDesc: "Freezing: risk of ice",
		RedDesc:    "Severe cold: frostbite risk",
	}

	Wind = HazardTrack{
		Name:       "wind",
		Yellow:     20,
		Orange:     35,
		Red:        50,
		YellowDesc: "Breezy: secure loose objects",
		OrangeDesc: "Strong wind: difficult cycling",
		RedDesc:    "Gale: stay indoors",
	}

	Rain = HazardTrack{
		Name:       "rain",
		Yellow:     5,
		Orange:     15,
		Red:        30,
		YellowDesc: "Light rain: carry an umbrella",
		OrangeDesc: "Heavy rain: localized flooding possible",
		RedDesc:    "Torrential rain: flood risk",
	}
)

// Level maps a raw value onto the track's ordinal.
func (h HazardTrack) Level(value float64) TrackLevel {
	if h.Inverted {
		switch {
		case value <= h.Red:
			return TrackRed
		case value <= h.Orange:
			return TrackOrange
		case value <= h.Yellow:
			return TrackYellow
		default:
			return TrackBaseline
		}
	}
	switch {
	case value >= h.Red:
		return TrackRed
	case value >= h.Orange:
		return TrackOrange
	case value >= h.Yellow:
		return TrackYellow
	default:
		return TrackBaseline
	}
}

// Description returns the human-readable text for a level on this track.
// The baseline level has no description.
func (h HazardTrack) Description(level TrackLevel) string {
	switch level {
	case TrackYellow:
		return h.YellowDesc
	case TrackOrange:
		return h.OrangeDesc
	case TrackRed:
		return h.RedDesc
	default:
		return ""
	}
}
