package models

import "time"

// IndicatorType identifies a macro indicator tracked by the dashboard.
type IndicatorType string

const (
	IndicatorVIX IndicatorType = "vix" // CBOE volatility index, absolute level
	IndicatorDXY IndicatorType = "dxy" // dollar index, monthly percent change
	IndicatorM2  IndicatorType = "m2"  // global money supply, monthly percent change
)

// AllIndicators lists every supported indicator in display order.
var AllIndicators = []IndicatorType{IndicatorVIX, IndicatorDXY, IndicatorM2}

// IsValid reports whether t is a supported indicator.
func (t IndicatorType) IsValid() bool {
	switch t {
	case IndicatorVIX, IndicatorDXY, IndicatorM2:
		return true
	default:
		return false
	}
}

// IndicatorSample is a single timestamped observation of an indicator.
// Sequences handed to the time-series index are ordered ascending by Timestamp.
type IndicatorSample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// ChartPoint is the unit the chart access layer operates on.
type ChartPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// IndicatorQuote is a live reading pushed by the streaming quote source.
type IndicatorQuote struct {
	Indicator IndicatorType `json:"indicator"`
	Timestamp time.Time     `json:"timestamp"`
	Value     float64       `json:"value"`
}

// IndicatorStat carries the precomputed distribution statistics for the
// current value of an indicator. Rarity is an "occurs ~1-in-N observations"
// estimate and is only meaningful when |ZScore| >= 2.
type IndicatorStat struct {
	Indicator         IndicatorType `json:"indicator"`
	CurrentValue      float64       `json:"current_value"`
	Mean              float64       `json:"mean"`
	StandardDeviation float64       `json:"standard_deviation"`
	ZScore            float64       `json:"z_score"`
	Rarity            *int          `json:"rarity,omitempty"`
}

// CorrelationStrength describes an externally supplied belief about how
// strongly an indicator currently tracks crypto-asset price.
type CorrelationStrength int

const (
	CorrelationWeak CorrelationStrength = iota
	CorrelationModerate
	CorrelationStrong
	CorrelationVeryStrong
)

func (c CorrelationStrength) String() string {
	switch c {
	case CorrelationWeak:
		return "weak"
	case CorrelationModerate:
		return "moderate"
	case CorrelationStrong:
		return "strong"
	case CorrelationVeryStrong:
		return "very_strong"
	default:
		return "unknown"
	}
}

// SignificanceLevel is the z-score classification tier.
type SignificanceLevel string

const (
	SignificanceNormal      SignificanceLevel = "normal"
	SignificanceSignificant SignificanceLevel = "significant"
	SignificanceExtreme     SignificanceLevel = "extreme"
)

// IndicatorReading is a classified view of one indicator for the snapshot.
type IndicatorReading struct {
	Indicator      IndicatorType     `json:"indicator"`
	Stat           IndicatorStat     `json:"stat"`
	Level          SignificanceLevel `json:"level"`
	Interpretation string            `json:"interpretation,omitempty"`
	Correlation    string            `json:"correlation,omitempty"`
}
