package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MacroPulse/internal/domain/models"
)

func dailyTrend(dir models.TrendDirection) models.TrendInfo {
	return models.TrendInfo{
		Timeframe:   models.TimeframeDaily,
		Direction:   dir,
		Strength:    models.TrendModerate,
		DaysInTrend: 12,
		HigherHighs: true,
		HigherLows:  false,
	}
}

func TestDeriveWeeklyAboveBoth(t *testing.T) {
	s := NewTrendSynthesizer()
	flags := models.SMAFlags{Above50: true, Above200: true}

	w := s.DeriveWeekly(dailyTrend(models.Uptrend), flags)
	assert.Equal(t, models.Uptrend, w.Direction)

	w = s.DeriveWeekly(dailyTrend(models.StrongUptrend), flags)
	assert.Equal(t, models.StrongUptrend, w.Direction)
}

func TestDeriveWeeklyBelowBoth(t *testing.T) {
	s := NewTrendSynthesizer()
	flags := models.SMAFlags{Above50: false, Above200: false}

	w := s.DeriveWeekly(dailyTrend(models.Downtrend), flags)
	assert.Equal(t, models.Downtrend, w.Direction)

	w = s.DeriveWeekly(dailyTrend(models.StrongDowntrend), flags)
	assert.Equal(t, models.StrongDowntrend, w.Direction)
}

func TestDeriveWeeklySplitFlagsAreSideways(t *testing.T) {
	s := NewTrendSynthesizer()

	w := s.DeriveWeekly(dailyTrend(models.StrongUptrend), models.SMAFlags{Above50: true, Above200: false})
	assert.Equal(t, models.Sideways, w.Direction)

	w = s.DeriveWeekly(dailyTrend(models.StrongDowntrend), models.SMAFlags{Above50: false, Above200: true})
	assert.Equal(t, models.Sideways, w.Direction)
}

func TestDeriveWeeklyMetadataPassThrough(t *testing.T) {
	s := NewTrendSynthesizer()
	daily := dailyTrend(models.Uptrend)
	w := s.DeriveWeekly(daily, models.SMAFlags{Above50: true, Above200: true})

	assert.Equal(t, models.TimeframeWeekly, w.Timeframe)
	assert.Equal(t, daily.Strength, w.Strength)
	assert.Equal(t, daily.DaysInTrend*7, w.DaysInTrend)
	assert.Equal(t, daily.HigherHighs, w.HigherHighs)
	assert.Equal(t, daily.HigherLows, w.HigherLows)
}

func TestDeriveMonthlyDirections(t *testing.T) {
	s := NewTrendSynthesizer()
	daily := dailyTrend(models.Uptrend)

	m := s.DeriveMonthly(daily, models.SMAFlags{Above200: true, GoldenCross: true})
	assert.Equal(t, models.StrongUptrend, m.Direction)

	m = s.DeriveMonthly(daily, models.SMAFlags{Above200: true})
	assert.Equal(t, models.Uptrend, m.Direction)

	m = s.DeriveMonthly(daily, models.SMAFlags{Above200: false, DeathCross: true})
	assert.Equal(t, models.StrongDowntrend, m.Direction)

	m = s.DeriveMonthly(daily, models.SMAFlags{Above200: false})
	assert.Equal(t, models.Downtrend, m.Direction)
}

func TestDeriveMonthlyStrengthAgreement(t *testing.T) {
	s := NewTrendSynthesizer()
	daily := dailyTrend(models.Uptrend)

	m := s.DeriveMonthly(daily, models.SMAFlags{Above50: true, Above200: true})
	assert.Equal(t, models.TrendStrong, m.Strength)

	m = s.DeriveMonthly(daily, models.SMAFlags{Above50: false, Above200: false})
	assert.Equal(t, models.TrendStrong, m.Strength)

	m = s.DeriveMonthly(daily, models.SMAFlags{Above50: true, Above200: false})
	assert.Equal(t, models.TrendModerate, m.Strength)
}

func TestDeriveMonthlyStructureFollowsAbove200(t *testing.T) {
	s := NewTrendSynthesizer()
	daily := dailyTrend(models.Uptrend)

	m := s.DeriveMonthly(daily, models.SMAFlags{Above200: true})
	assert.True(t, m.HigherHighs)
	assert.True(t, m.HigherLows)
	assert.Equal(t, daily.DaysInTrend*30, m.DaysInTrend)

	m = s.DeriveMonthly(daily, models.SMAFlags{Above200: false})
	assert.False(t, m.HigherHighs)
	assert.False(t, m.HigherLows)
}

func TestDeriveFullSet(t *testing.T) {
	s := NewTrendSynthesizer()
	set := s.Derive("BTC", dailyTrend(models.StrongUptrend), models.SMAFlags{Above50: true, Above200: true, GoldenCross: true})

	assert.Equal(t, "BTC", set.Symbol)
	assert.Equal(t, models.TimeframeDaily, set.Daily.Timeframe)
	assert.Equal(t, models.StrongUptrend, set.Weekly.Direction)
	assert.Equal(t, models.StrongUptrend, set.Monthly.Direction)
}
