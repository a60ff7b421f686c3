package features

import (
	"context"
	"fmt"
	"math"

	"MacroPulse/internal/domain/models"
	domsvc "MacroPulse/internal/domain/service"
)

// rarityFloor is the |z| below which a rarity estimate is not attached.
const rarityFloor = 2.0

// Computer derives distribution statistics for an indicator history locally.
type Computer struct{}

func NewComputer() *Computer { return &Computer{} }

// ComputeStat computes mean, sample standard deviation and the z-score of the
// latest value. A rarity estimate is attached only when |z| >= 2; below that
// the estimate is statistically meaningless and must not be displayed.
func (c *Computer) ComputeStat(_ context.Context, indicator models.IndicatorType, history []models.IndicatorSample) (models.IndicatorStat, error) {
	if len(history) < 2 {
		return models.IndicatorStat{}, fmt.Errorf("compute stat %s: insufficient history (%d samples)", indicator, len(history))
	}

	values := make([]float64, len(history))
	for i, s := range history {
		values[i] = s.Value
	}
	current := values[len(values)-1]

	mean := Mean(values)
	std := StdDev(values, mean)

	var z float64
	if std > 0 {
		z = (current - mean) / std
	}

	stat := models.IndicatorStat{
		Indicator:         indicator,
		CurrentValue:      current,
		Mean:              mean,
		StandardDeviation: std,
		ZScore:            z,
	}
	if math.Abs(z) >= rarityFloor {
		r := RarityFromZ(z)
		stat.Rarity = &r
	}
	return stat, nil
}

var _ domsvc.StatComputer = (*Computer)(nil)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation (n-1 denominator).
func StdDev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sum2 := 0.0
	for _, x := range xs {
		d := x - mean
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(len(xs)-1))
}

// RarityFromZ estimates "occurs ~1-in-N observations" from a two-sided
// normal tail: N = 1 / P(|Z| >= |z|) = 1 / erfc(|z|/sqrt2).
func RarityFromZ(z float64) int {
	p := math.Erfc(math.Abs(z) / math.Sqrt2)
	if p <= 0 {
		return math.MaxInt32
	}
	return int(math.Round(1 / p))
}

// MonthlyChangePercent returns the percent change between the latest sample
// and the sample closest to 30 days earlier. ok=false when the history is
// too short to span a month or the base value is zero.
func MonthlyChangePercent(history []models.IndicatorSample) (float64, bool) {
	if len(history) < 2 {
		return 0, false
	}
	latest := history[len(history)-1]
	cutoff := latest.Timestamp.AddDate(0, 0, -30)

	// Walk backwards to the first sample at or before the cutoff; history is
	// ascending so the walk is short for daily data.
	base := history[0]
	found := false
	for i := len(history) - 2; i >= 0; i-- {
		if !history[i].Timestamp.After(cutoff) {
			base = history[i]
			found = true
			break
		}
	}
	if !found || base.Value == 0 {
		return 0, false
	}
	return (latest.Value - base.Value) / base.Value * 100, true
}
