package classify

// AlertLevel is the ordinal risk scale used for table rows and alert cards.
type AlertLevel int

const (
	LevelOptimal AlertLevel = iota // no concern
	LevelCaution                   // yellow
	LevelAlert                     // orange
	LevelCritical                  // red
)

func (l AlertLevel) String() string {
	switch l {
	case LevelOptimal:
		return "optimal"
	case LevelCaution:
		return "caution"
	case LevelAlert:
		return "alert"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Thresholds parameterizes risk classification so hourly and daily contexts
// share one rule set instead of two drifting copies.
type Thresholds struct {
	CriticalWindKmh    float64
	CriticalPrecipMM   float64 // for the daily aggregate context
	CriticalPrecipHrMM float64 // for a single hourly step

	AlertWindKmh    float64
	AlertPrecipMM   float64
	AlertPrecipHrMM float64
	AlertTempMaxC   float64 // at or below this is alert-level cold

	CautionWindKmh    float64
	CautionPrecipMM   float64
	CautionPrecipHrMM float64
	CautionTempMaxC   float64 // below this is caution-level cold
}

// DefaultThresholds is the canonical table. The dashboards this replaces
// carried two hand-maintained variants (wind 30 vs 35, temp 4 vs 5); the
// lower bound of each pair was kept so no condition previously flagged goes
// unflagged.
var DefaultThresholds = Thresholds{
	CriticalWindKmh:    50,
	CriticalPrecipMM:   50,
	CriticalPrecipHrMM: 15,

	AlertWindKmh:    30,
	AlertPrecipMM:   30,
	AlertPrecipHrMM: 10,
	AlertTempMaxC:   -1,

	CautionWindKmh:    20,
	CautionPrecipMM:   20,
	CautionPrecipHrMM: 5,
	CautionTempMaxC:   4,
}

// Risk classifies one row of weather data. Rules are evaluated top-down and
// the first match wins. daily selects the aggregate precipitation cutoffs;
// hourly steps use the tighter per-step ones.
func Risk(tempC, precipMM, windKmh float64, daily bool, t Thresholds) AlertLevel {
	precipCritical := t.CriticalPrecipHrMM
	precipAlert := t.AlertPrecipHrMM
	precipCaution := t.CautionPrecipHrMM
	if daily {
		precipCritical = t.CriticalPrecipMM
		precipAlert = t.AlertPrecipMM
		precipCaution = t.CautionPrecipMM
	}

	switch {
	case windKmh >= t.CriticalWindKmh || precipMM >= precipCritical:
		return LevelCritical
	case windKmh >= t.AlertWindKmh || precipMM >= precipAlert || tempC <= t.AlertTempMaxC:
		return LevelAlert
	case windKmh >= t.CautionWindKmh || precipMM >= precipCaution || tempC < t.CautionTempMaxC:
		return LevelCaution
	default:
		return LevelOptimal
	}
}

// RiskDescription returns the textual risk summary shown on alert cards.
func RiskDescription(level AlertLevel) string {
	switch level {
	case LevelCritical:
		return "Severe conditions: strong wind or heavy precipitation expected"
	case LevelAlert:
		return "Adverse conditions: wind, rain or freezing temperatures expected"
	case LevelCaution:
		return "Unsettled conditions: some wind, rain or cold expected"
	default:
		return "Favourable conditions"
	}
}
