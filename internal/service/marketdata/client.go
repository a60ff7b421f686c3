package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
)

// Client fetches indicator history from the upstream market-data REST API.
// Fetch failures degrade to a synthetic series so the dashboard keeps
// rendering; the substitution is logged and counted, never surfaced as a
// hard error.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
	limiter *ratelimit.Limiter
	rps     float64
	burst   float64
	metrics drepo.Metrics
	log     *logger.Logger
}

func NewClient(cfg *config.Config, metrics drepo.Metrics, log *logger.Logger) *Client {
	timeout := cfg.MarketData.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := float64(cfg.MarketData.Rate.RPS)
	if rps <= 0 {
		rps = 5
	}
	burst := float64(cfg.MarketData.Rate.Burst)
	if burst <= 0 {
		burst = rps
	}
	return &Client{
		baseURL: cfg.MarketData.BaseURL,
		apiKey:  cfg.MarketData.APIKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		limiter: ratelimit.New(),
		rps:     rps,
		burst:   burst,
		metrics: metrics,
		log:     log,
	}
}

type historyResponse struct {
	Indicator string `json:"indicator"`
	Points    []struct {
		Timestamp int64   `json:"t"` // unix seconds
		Value     float64 `json:"v"`
	} `json:"points"`
}

// FetchHistory returns up to `days` daily samples for an indicator, ascending
// by timestamp. On upstream failure it returns a synthetic series instead.
func (c *Client) FetchHistory(ctx context.Context, indicator models.IndicatorType, days int) ([]models.IndicatorSample, error) {
	if days <= 0 {
		days = 365
	}

	start := time.Now()
	samples, err := c.fetchRemote(ctx, indicator, days)
	if c.metrics != nil {
		c.metrics.RecordFetch(string(indicator), time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordError("history_fetch")
		}
		c.log.Warn("history fetch failed, substituting synthetic series",
			logger.String("indicator", string(indicator)),
			logger.Error(err),
		)
		return SyntheticSeries(indicator, days, time.Now()), nil
	}
	return samples, nil
}

func (c *Client) fetchRemote(ctx context.Context, indicator models.IndicatorType, days int) ([]models.IndicatorSample, error) {
	if !c.limiter.Allow("history:"+string(indicator), c.burst, c.rps) {
		return nil, fmt.Errorf("rate limited")
	}

	var hr historyResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v1/history/%s", c.baseURL, indicator),
		Headers: map[string]string{
			"X-API-Key": c.apiKey,
		},
		QueryParams: map[string][]string{
			"days": {fmt.Sprintf("%d", days)},
		},
	}, &hr)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history: %w", indicator, err)
	}
	if len(hr.Points) == 0 {
		return nil, fmt.Errorf("fetch %s history: empty response", indicator)
	}

	samples := make([]models.IndicatorSample, 0, len(hr.Points))
	for _, p := range hr.Points {
		if p.Timestamp <= 0 {
			continue
		}
		samples = append(samples, models.IndicatorSample{
			Timestamp: time.Unix(p.Timestamp, 0).UTC(),
			Value:     p.Value,
		})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Timestamp.Before(samples[j].Timestamp) })
	return samples, nil
}

// FetchCloses returns up to `days` daily closing prices for a symbol,
// ascending by time. Trends for three timeframes are synthesized from this
// single fetch, so failures here surface to the caller instead of degrading.
func (c *Client) FetchCloses(ctx context.Context, symbol string, days int) ([]float64, error) {
	if days <= 0 {
		days = 365
	}
	if !c.limiter.Allow("closes:"+symbol, c.burst, c.rps) {
		return nil, fmt.Errorf("rate limited")
	}

	var hr historyResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v1/prices/%s", c.baseURL, symbol),
		Headers: map[string]string{
			"X-API-Key": c.apiKey,
		},
		QueryParams: map[string][]string{
			"days": {fmt.Sprintf("%d", days)},
		},
	}, &hr)
	if err != nil {
		return nil, fmt.Errorf("fetch %s closes: %w", symbol, err)
	}

	sort.Slice(hr.Points, func(i, j int) bool { return hr.Points[i].Timestamp < hr.Points[j].Timestamp })
	closes := make([]float64, 0, len(hr.Points))
	for _, p := range hr.Points {
		closes = append(closes, p.Value)
	}
	return closes, nil
}

var _ drepo.HistorySource = (*Client)(nil)
