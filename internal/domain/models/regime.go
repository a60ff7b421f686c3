package models

import (
	"fmt"
	"time"
)

// MarketRegime is a coarse classification of macro risk appetite.
type MarketRegime string

const (
	RegimeRiskOn  MarketRegime = "risk_on"
	RegimeRiskOff MarketRegime = "risk_off"
	RegimeMixed   MarketRegime = "mixed"
	RegimeNoData  MarketRegime = "no_data"
)

// Description returns the human-readable dashboard copy for the regime.
func (r MarketRegime) Description() string {
	switch r {
	case RegimeRiskOn:
		return "Risk-on: macro conditions favor risk assets"
	case RegimeRiskOff:
		return "Risk-off: macro conditions favor defensive positioning"
	case RegimeMixed:
		return "Mixed: macro indicators disagree"
	case RegimeNoData:
		return "Insufficient macro data"
	default:
		return "Unknown regime"
	}
}

// Label returns the short display name used in notification copy.
func (r MarketRegime) Label() string {
	switch r {
	case RegimeRiskOn:
		return "Risk-On"
	case RegimeRiskOff:
		return "Risk-Off"
	case RegimeMixed:
		return "Mixed"
	case RegimeNoData:
		return "No Data"
	default:
		return string(r)
	}
}

// RegimeInputs are the latest available readings handed to the classifier.
// Each reading is optional: classification proceeds with 2-of-3 data.
type RegimeInputs struct {
	VIXLevel  *float64 // absolute index level
	DXYChange *float64 // monthly-equivalent percent change
	M2Change  *float64 // monthly percent change
}

// Available counts the inputs that are present.
func (in RegimeInputs) Available() int {
	n := 0
	if in.VIXLevel != nil {
		n++
	}
	if in.DXYChange != nil {
		n++
	}
	if in.M2Change != nil {
		n++
	}
	return n
}

// RegimeTrackerState is the durable state of the regime change tracker.
// Created on first observation, overwritten on every confirmed transition,
// never deleted.
type RegimeTrackerState struct {
	LastKnownRegime      *MarketRegime `json:"last_known_regime,omitempty"`
	LastChangeAt         *time.Time    `json:"last_change_at,omitempty"`
	NotificationsEnabled bool          `json:"notifications_enabled"`
}

// AlertPayload is the one-shot regime transition alert handed to the sink.
// Delivery mechanics (push, banner, retry) are the sink's responsibility.
type AlertPayload struct {
	From  MarketRegime `json:"from"`
	To    MarketRegime `json:"to"`
	Title string       `json:"title"`
	Body  string       `json:"body"`
	At    time.Time    `json:"at"`
}

// NewAlertPayload builds the notification copy for a confirmed transition.
func NewAlertPayload(from, to MarketRegime, at time.Time) AlertPayload {
	return AlertPayload{
		From:  from,
		To:    to,
		Title: fmt.Sprintf("Market regime changed: %s", to.Label()),
		Body:  fmt.Sprintf("Macro regime moved from %s to %s. %s", from.Label(), to.Label(), to.Description()),
		At:    at,
	}
}

// MacroSnapshot is the merged view of all indicator readings and the combined
// regime. Per-indicator fields are optional; partial fetch failures are
// recorded in Errors instead of failing the snapshot.
type MacroSnapshot struct {
	Timestamp time.Time         `json:"timestamp"`
	VIX       *IndicatorReading `json:"vix,omitempty"`
	DXY       *IndicatorReading `json:"dxy,omitempty"`
	M2        *IndicatorReading `json:"m2,omitempty"`
	Regime    MarketRegime      `json:"regime"`
	Risk      *RiskScore        `json:"risk,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// RiskScore is the output of the external fair-value regression model.
// The model itself is out of scope; only its consumption contract is.
type RiskScore struct {
	Symbol     string    `json:"symbol"`
	Timestamp  time.Time `json:"timestamp"`
	Score      float64   `json:"score"` // 0 (deep value) .. 1 (cycle top)
	FairValue  float64   `json:"fair_value"`
	Confidence float64   `json:"confidence"`
}
