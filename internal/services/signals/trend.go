package signals

import "MacroPulse/internal/domain/models"

// TrendSynthesizer derives weekly and monthly trend estimates from a single
// daily trend plus moving-average position flags. One fetch feeds all three
// displayed timeframes; this is an explicit approximation, not a
// recomputation from weekly or monthly candles.
type TrendSynthesizer struct{}

func NewTrendSynthesizer() *TrendSynthesizer { return &TrendSynthesizer{} }

// Derive produces the full three-timeframe set for a symbol.
func (s *TrendSynthesizer) Derive(symbol string, daily models.TrendInfo, flags models.SMAFlags) models.TrendSet {
	daily.Timeframe = models.TimeframeDaily
	return models.TrendSet{
		Symbol:  symbol,
		Daily:   daily,
		Weekly:  s.DeriveWeekly(daily, flags),
		Monthly: s.DeriveMonthly(daily, flags),
	}
}

// DeriveWeekly keys on the combined 50/200 position. Strength and the
// higher-highs/lows structure pass through from daily; daysInTrend scales
// by the timeframe ratio.
func (s *TrendSynthesizer) DeriveWeekly(daily models.TrendInfo, flags models.SMAFlags) models.TrendInfo {
	out := models.TrendInfo{
		Timeframe:   models.TimeframeWeekly,
		Strength:    daily.Strength,
		DaysInTrend: daily.DaysInTrend * 7,
		HigherHighs: daily.HigherHighs,
		HigherLows:  daily.HigherLows,
	}

	switch {
	case flags.Above50 && flags.Above200:
		if daily.Direction == models.StrongUptrend {
			out.Direction = models.StrongUptrend
		} else {
			out.Direction = models.Uptrend
		}
	case !flags.Above50 && !flags.Above200:
		if daily.Direction == models.StrongDowntrend {
			out.Direction = models.StrongDowntrend
		} else {
			out.Direction = models.Downtrend
		}
	default:
		out.Direction = models.Sideways
	}

	return out
}

// DeriveMonthly keys primarily on the 200-period average and the active
// crossover state. Strength is strong when the 50 and 200 position flags
// agree, moderate otherwise. Higher highs and higher lows are both set from
// the 200 position flag; downstream display depends on the exact values, so
// the redundancy is intentional.
func (s *TrendSynthesizer) DeriveMonthly(daily models.TrendInfo, flags models.SMAFlags) models.TrendInfo {
	out := models.TrendInfo{
		Timeframe:   models.TimeframeMonthly,
		DaysInTrend: daily.DaysInTrend * 30,
		HigherHighs: flags.Above200,
		HigherLows:  flags.Above200,
	}

	switch {
	case flags.Above200 && flags.GoldenCross:
		out.Direction = models.StrongUptrend
	case flags.Above200:
		out.Direction = models.Uptrend
	case flags.DeathCross:
		out.Direction = models.StrongDowntrend
	default:
		out.Direction = models.Downtrend
	}

	if flags.Above50 == flags.Above200 {
		out.Strength = models.TrendStrong
	} else {
		out.Strength = models.TrendModerate
	}

	return out
}
