package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type SnapshotRequest struct {
	Days   int    `query:"days" json:"days" default:"365" validate:"gte=30,lte=3650"`
	Symbol string `query:"symbol" json:"symbol" default:"BTC"`
}

type ChartRequest struct {
	Indicator string `query:"indicator" json:"indicator" validate:"required,oneof=vix dxy m2"`
	Days      int    `query:"days" json:"days" default:"365" validate:"gte=1,lte=3650"`
	MaxPoints int    `query:"max_points" json:"max_points" default:"300" validate:"gte=0,lte=5000"`
}

type NearestRequest struct {
	Indicator string `query:"indicator" json:"indicator" validate:"required,oneof=vix dxy m2"`
	Days      int    `query:"days" json:"days" default:"365" validate:"gte=1,lte=3650"`
	TS        string `query:"ts" json:"ts" validate:"required"`
}

type TrendRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}

type AlertSettingsRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
