package models

import "encoding/json"

// TrendDirection is the ordinal trend classification.
type TrendDirection int

const (
	StrongDowntrend TrendDirection = iota - 2
	Downtrend
	Sideways
	Uptrend
	StrongUptrend
)

// MarshalJSON emits the direction as its string label.
func (d TrendDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the string label form.
func (d *TrendDirection) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "strong_downtrend":
		*d = StrongDowntrend
	case "downtrend":
		*d = Downtrend
	case "uptrend":
		*d = Uptrend
	case "strong_uptrend":
		*d = StrongUptrend
	default:
		*d = Sideways
	}
	return nil
}

func (d TrendDirection) String() string {
	switch d {
	case StrongDowntrend:
		return "strong_downtrend"
	case Downtrend:
		return "downtrend"
	case Sideways:
		return "sideways"
	case Uptrend:
		return "uptrend"
	case StrongUptrend:
		return "strong_uptrend"
	default:
		return "unknown"
	}
}

// TrendStrength is the qualitative strength tier of a trend.
type TrendStrength string

const (
	TrendWeak     TrendStrength = "weak"
	TrendModerate TrendStrength = "moderate"
	TrendStrong   TrendStrength = "strong"
)

// Timeframe is a displayed trend horizon.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// TrendInfo is one timeframe's trend estimate plus its structural metadata.
type TrendInfo struct {
	Timeframe   Timeframe      `json:"timeframe"`
	Direction   TrendDirection `json:"direction"`
	Strength    TrendStrength  `json:"strength"`
	DaysInTrend int            `json:"days_in_trend"`
	HigherHighs bool           `json:"higher_highs"`
	HigherLows  bool           `json:"higher_lows"`
}

// SMAFlags describe current price position relative to the moving averages
// plus the active crossover state. Supplied by the technicals fetch, consumed
// by the trend synthesizer.
type SMAFlags struct {
	Above21     bool `json:"above_21"`
	Above50     bool `json:"above_50"`
	Above200    bool `json:"above_200"`
	GoldenCross bool `json:"golden_cross"`
	DeathCross  bool `json:"death_cross"`
}

// TrendSet groups the three displayed timeframes derived from one daily fetch.
type TrendSet struct {
	Symbol  string    `json:"symbol"`
	Daily   TrendInfo `json:"daily"`
	Weekly  TrendInfo `json:"weekly"`
	Monthly TrendInfo `json:"monthly"`
}
