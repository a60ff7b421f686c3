package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"MacroPulse/internal/domain/models"
)

func f(v float64) *float64 { return &v }

func TestRegimeAllBullish(t *testing.T) {
	c := NewRegimeClassifier(DefaultRegimeThresholds())
	got := c.Classify(models.RegimeInputs{
		VIXLevel:  f(12),   // calm
		DXYChange: f(-0.8), // weakening dollar
		M2Change:  f(1.5),  // expanding liquidity
	})
	assert.Equal(t, models.RegimeRiskOn, got)
}

func TestRegimeAllBearish(t *testing.T) {
	c := NewRegimeClassifier(DefaultRegimeThresholds())
	got := c.Classify(models.RegimeInputs{
		VIXLevel:  f(31),
		DXYChange: f(0.9),
		M2Change:  f(-1.4),
	})
	assert.Equal(t, models.RegimeRiskOff, got)
}

func TestRegimeBearishVeto(t *testing.T) {
	// Unanimity, not majority: a single bearish vote prevents risk-on even
	// with two bullish votes present.
	c := NewRegimeClassifier(DefaultRegimeThresholds())
	got := c.Classify(models.RegimeInputs{
		VIXLevel:  f(12),
		DXYChange: f(-0.8),
		M2Change:  f(-1.4),
	})
	assert.Equal(t, models.RegimeMixed, got)
}

func TestRegimeInsufficientData(t *testing.T) {
	c := NewRegimeClassifier(DefaultRegimeThresholds())

	assert.Equal(t, models.RegimeNoData, c.Classify(models.RegimeInputs{VIXLevel: f(12)}))
	assert.Equal(t, models.RegimeNoData, c.Classify(models.RegimeInputs{}))
}

func TestRegimeTwoOfThree(t *testing.T) {
	// Classification proceeds with two present indicators.
	c := NewRegimeClassifier(DefaultRegimeThresholds())
	got := c.Classify(models.RegimeInputs{
		VIXLevel:  f(12),
		DXYChange: f(-0.8),
	})
	assert.Equal(t, models.RegimeRiskOn, got)
}

func TestRegimeNeutralsDoNotBlockUnanimity(t *testing.T) {
	c := NewRegimeClassifier(DefaultRegimeThresholds())
	got := c.Classify(models.RegimeInputs{
		VIXLevel:  f(20),   // inside the neutral band
		DXYChange: f(-0.8), // bullish
		M2Change:  f(1.5),  // bullish
	})
	assert.Equal(t, models.RegimeRiskOn, got)
}

func TestRegimeAllNeutral(t *testing.T) {
	c := NewRegimeClassifier(DefaultRegimeThresholds())
	got := c.Classify(models.RegimeInputs{
		VIXLevel:  f(20),
		DXYChange: f(0.1),
		M2Change:  f(0.2),
	})
	assert.Equal(t, models.RegimeMixed, got)
}

func TestRegimeBandEdges(t *testing.T) {
	c := NewRegimeClassifier(DefaultRegimeThresholds())

	// Exactly on a cutoff is neutral: bands are strict inequalities.
	got := c.Classify(models.RegimeInputs{
		VIXLevel:  f(15),
		DXYChange: f(0.3),
		M2Change:  f(1.0),
	})
	assert.Equal(t, models.RegimeMixed, got)
}
