package signals

import (
	"math"

	"MacroPulse/internal/domain/models"
)

// ZScoreThresholds hold the tier cutoffs for one indicator. Extreme is
// tunable per indicator; Significant doubles as the rarity display floor.
type ZScoreThresholds struct {
	Significant float64
	Extreme     float64
}

// DefaultZScoreThresholds returns the shared 2.0 / 2.5 cutoffs.
func DefaultZScoreThresholds() ZScoreThresholds {
	return ZScoreThresholds{Significant: 2.0, Extreme: 2.5}
}

// ZScoreClassifier classifies an indicator stat into a significance tier and
// attaches the qualitative interpretation. Pure: no side effects, no I/O.
type ZScoreClassifier struct {
	thresholds map[models.IndicatorType]ZScoreThresholds
}

// NewZScoreClassifier builds a classifier with optional per-indicator
// threshold overrides; indicators without an override use the defaults.
func NewZScoreClassifier(overrides map[models.IndicatorType]ZScoreThresholds) *ZScoreClassifier {
	t := make(map[models.IndicatorType]ZScoreThresholds, len(models.AllIndicators))
	for _, ind := range models.AllIndicators {
		t[ind] = DefaultZScoreThresholds()
	}
	for ind, o := range overrides {
		t[ind] = o
	}
	return &ZScoreClassifier{thresholds: t}
}

// Classify tiers the stat and suppresses rarity below the significant cutoff:
// a sub-threshold reading must not display a rarity claim even if the stat
// record carries one.
func (c *ZScoreClassifier) Classify(stat models.IndicatorStat) models.IndicatorReading {
	th, ok := c.thresholds[stat.Indicator]
	if !ok {
		th = DefaultZScoreThresholds()
	}

	abs := math.Abs(stat.ZScore)
	level := models.SignificanceNormal
	switch {
	case abs >= th.Extreme:
		level = models.SignificanceExtreme
	case abs >= th.Significant:
		level = models.SignificanceSignificant
	}

	if level == models.SignificanceNormal {
		stat.Rarity = nil
	}

	return models.IndicatorReading{
		Indicator:      stat.Indicator,
		Stat:           stat,
		Level:          level,
		Interpretation: interpret(stat.Indicator, stat.ZScore >= 0, level),
	}
}

type interpretationKey struct {
	indicator models.IndicatorType
	positive  bool
	level     models.SignificanceLevel
}

// Interpretation copy keyed by (indicator, sign, tier). Extending to a new
// indicator means adding rows here, not touching the classifier.
var interpretations = map[interpretationKey]string{
	{models.IndicatorVIX, true, models.SignificanceSignificant}:  "Elevated volatility: bearish risk signal",
	{models.IndicatorVIX, true, models.SignificanceExtreme}:      "Volatility spike: strongly bearish risk signal",
	{models.IndicatorVIX, false, models.SignificanceSignificant}: "Unusually calm markets: supportive of risk assets",
	{models.IndicatorVIX, false, models.SignificanceExtreme}:     "Extreme complacency: supportive but prone to sharp reversal",

	{models.IndicatorDXY, true, models.SignificanceSignificant}:  "Dollar strength: headwind for crypto",
	{models.IndicatorDXY, true, models.SignificanceExtreme}:      "Sharp dollar rally: strong headwind for crypto",
	{models.IndicatorDXY, false, models.SignificanceSignificant}: "Dollar weakness: tailwind for crypto",
	{models.IndicatorDXY, false, models.SignificanceExtreme}:     "Dollar slide: strong tailwind for crypto",

	{models.IndicatorM2, true, models.SignificanceSignificant}:  "Liquidity expansion: bullish with a lag",
	{models.IndicatorM2, true, models.SignificanceExtreme}:      "Rapid liquidity expansion: strongly bullish with a lag",
	{models.IndicatorM2, false, models.SignificanceSignificant}: "Liquidity contraction: bearish with a lag",
	{models.IndicatorM2, false, models.SignificanceExtreme}:     "Sharp liquidity contraction: strongly bearish with a lag",
}

func interpret(ind models.IndicatorType, positive bool, level models.SignificanceLevel) string {
	if level == models.SignificanceNormal {
		return ""
	}
	return interpretations[interpretationKey{indicator: ind, positive: positive, level: level}]
}
