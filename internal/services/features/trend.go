package features

import (
	"MacroPulse/internal/domain/models"
)

const (
	smaShort  = 21
	smaMid    = 50
	smaLong   = 200
	swingDays = 20
	crossLook = 30
)

// SMAFlagsFromCloses derives the moving-average position flags from a daily
// close series, ascending in time. A crossover flag is set only when the
// 50/200 cross happened within the last crossLook days.
func SMAFlagsFromCloses(closes []float64) models.SMAFlags {
	var flags models.SMAFlags
	n := len(closes)
	if n == 0 {
		return flags
	}

	last := closes[n-1]
	if n >= smaShort {
		flags.Above21 = last > sma(closes, smaShort, 0)
	}
	if n >= smaMid {
		flags.Above50 = last > sma(closes, smaMid, 0)
	}
	if n < smaLong {
		return flags
	}
	flags.Above200 = last > sma(closes, smaLong, 0)

	spread := sma(closes, smaMid, 0) - sma(closes, smaLong, 0)
	for back := 1; back <= crossLook && n-back >= smaLong; back++ {
		prev := sma(closes, smaMid, back) - sma(closes, smaLong, back)
		if spread > 0 && prev <= 0 {
			flags.GoldenCross = true
			break
		}
		if spread < 0 && prev >= 0 {
			flags.DeathCross = true
			break
		}
	}
	return flags
}

// DailyTrend estimates the daily trend from a close series, ascending in
// time. It is the single-fetch basis the weekly and monthly views are
// synthesized from.
func DailyTrend(closes []float64) models.TrendInfo {
	info := models.TrendInfo{Timeframe: models.TimeframeDaily, Direction: models.Sideways, Strength: models.TrendWeak}
	n := len(closes)
	if n < smaShort {
		return info
	}

	last := closes[n-1]
	s21 := sma(closes, smaShort, 0)

	info.HigherHighs, info.HigherLows = swingStructure(closes)
	info.DaysInTrend = daysOnSameSide(closes, last > s21)
	info.Direction = direction(closes, last, info.HigherHighs, info.HigherLows)

	if n >= smaMid {
		s50 := sma(closes, smaMid, 0)
		switch dist := abs(last-s50) / s50; {
		case dist > 0.05:
			info.Strength = models.TrendStrong
		case dist > 0.02:
			info.Strength = models.TrendModerate
		}
	}
	return info
}

func direction(closes []float64, last float64, higherHighs, higherLows bool) models.TrendDirection {
	n := len(closes)
	score := 0
	if n >= smaShort {
		if last > sma(closes, smaShort, 0) {
			score++
		} else {
			score--
		}
	}
	if n >= smaMid {
		if last > sma(closes, smaMid, 0) {
			score++
		} else {
			score--
		}
	}
	if n >= smaLong {
		if last > sma(closes, smaLong, 0) {
			score++
		} else {
			score--
		}
	}

	switch {
	case score == 3:
		if higherHighs && higherLows {
			return models.StrongUptrend
		}
		return models.Uptrend
	case score == -3:
		if !higherHighs && !higherLows {
			return models.StrongDowntrend
		}
		return models.Downtrend
	default:
		return models.Sideways
	}
}

// sma computes the n-period simple moving average ending `back` days before
// the last close. Caller guarantees len(closes) >= n+back.
func sma(closes []float64, n, back int) float64 {
	end := len(closes) - back
	sum := 0.0
	for _, v := range closes[end-n : end] {
		sum += v
	}
	return sum / float64(n)
}

// swingStructure compares the latest swing window against the prior one.
func swingStructure(closes []float64) (higherHighs, higherLows bool) {
	n := len(closes)
	if n < 2*swingDays {
		return false, false
	}
	recentHi, recentLo := window(closes[n-swingDays:])
	priorHi, priorLo := window(closes[n-2*swingDays : n-swingDays])
	return recentHi > priorHi, recentLo > priorLo
}

func window(xs []float64) (hi, lo float64) {
	hi, lo = xs[0], xs[0]
	for _, v := range xs[1:] {
		if v > hi {
			hi = v
		}
		if v < lo {
			lo = v
		}
	}
	return hi, lo
}

// daysOnSameSide counts consecutive closes on the current side of the
// 21-period average, walking backwards from the latest close.
func daysOnSameSide(closes []float64, above bool) int {
	n := len(closes)
	days := 0
	for back := 0; n-back >= smaShort; back++ {
		side := closes[n-1-back] > sma(closes, smaShort, back)
		if side != above {
			break
		}
		days++
	}
	return days
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
