package signals

import "MacroPulse/internal/domain/models"

// RegimeThresholds hold the per-indicator vote cutoffs.
type RegimeThresholds struct {
	VIXBullishBelow float64 // absolute level
	VIXBearishAbove float64 // absolute level
	DXYBand         float64 // monthly percent change, symmetric band
	M2Band          float64 // monthly percent change, symmetric band
}

// DefaultRegimeThresholds returns the production cutoffs.
func DefaultRegimeThresholds() RegimeThresholds {
	return RegimeThresholds{
		VIXBullishBelow: 15,
		VIXBearishAbove: 25,
		DXYBand:         0.3,
		M2Band:          1.0,
	}
}

type vote int

const (
	voteBearish vote = iota - 1
	voteNeutral
	voteBullish
)

// RegimeClassifier combines the latest VIX/DXY/M2 readings into one regime.
// Each indicator casts an independent bullish/bearish/neutral vote; the
// combination is a conservative unanimity rule, not a majority: one bearish
// vote vetoes risk-on even if the other two are bullish.
type RegimeClassifier struct {
	t RegimeThresholds
}

func NewRegimeClassifier(t RegimeThresholds) *RegimeClassifier {
	return &RegimeClassifier{t: t}
}

// Classify evaluates the votes over whatever inputs are present. Fewer than
// two available indicators yields NoData rather than a guess.
func (c *RegimeClassifier) Classify(in models.RegimeInputs) models.MarketRegime {
	if in.Available() < 2 {
		return models.RegimeNoData
	}

	var votes []vote
	if in.VIXLevel != nil {
		votes = append(votes, c.voteVIX(*in.VIXLevel))
	}
	if in.DXYChange != nil {
		votes = append(votes, voteBand(*in.DXYChange, -c.t.DXYBand, c.t.DXYBand, true))
	}
	if in.M2Change != nil {
		votes = append(votes, voteBand(*in.M2Change, -c.t.M2Band, c.t.M2Band, false))
	}

	var hasBull, hasBear bool
	for _, v := range votes {
		switch v {
		case voteBullish:
			hasBull = true
		case voteBearish:
			hasBear = true
		}
	}

	switch {
	case hasBull && !hasBear:
		return models.RegimeRiskOn
	case hasBear && !hasBull:
		return models.RegimeRiskOff
	default:
		// disagreement, or every vote neutral
		return models.RegimeMixed
	}
}

func (c *RegimeClassifier) voteVIX(level float64) vote {
	switch {
	case level < c.t.VIXBullishBelow:
		return voteBullish
	case level > c.t.VIXBearishAbove:
		return voteBearish
	default:
		return voteNeutral
	}
}

// voteBand casts a vote for a percent-change reading against a symmetric
// band. inverted marks indicators where a falling value is the bullish side
// (DXY); M2 is the direct case.
func voteBand(change, low, high float64, inverted bool) vote {
	switch {
	case change < low:
		if inverted {
			return voteBullish
		}
		return voteBearish
	case change > high:
		if inverted {
			return voteBearish
		}
		return voteBullish
	default:
		return voteNeutral
	}
}
