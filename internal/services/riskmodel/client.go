package riskmodel

import (
	"context"
	"fmt"
	"time"

	"MacroPulse/internal/domain/models"
	domsvc "MacroPulse/internal/domain/service"
	svcmetrics "MacroPulse/internal/service/metrics"
	"MacroPulse/pkg/config"
	xhttp "MacroPulse/pkg/http"
)

// Client talks to the external fair-value regression service over HTTP.
// The model itself lives elsewhere; this client owns request shaping,
// retries and response decoding.
type Client struct {
	baseURL string
	retries int
	http    *xhttp.Client
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.RiskModel.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	retries := cfg.RiskModel.Retries
	if retries <= 0 {
		retries = 3
	}
	return &Client{
		baseURL: cfg.RiskModel.URL,
		retries: retries,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type scoreRequest struct {
	Symbol string `json:"symbol"`
}

type scoreResponse struct {
	Score      float64 `json:"score"`
	FairValue  float64 `json:"fair_value"`
	Confidence float64 `json:"confidence"`
}

func (c *Client) Score(ctx context.Context, symbol string) (models.RiskScore, error) {
	var result models.RiskScore
	if c.baseURL == "" {
		return result, fmt.Errorf("risk model url not configured")
	}

	start := time.Now()
	var sr scoreResponse
	err := c.postJSONWithRetry(ctx, "/score", scoreRequest{Symbol: symbol}, &sr)
	svcmetrics.RiskModelLatency.WithLabelValues("score").Observe(time.Since(start).Seconds())
	if err != nil {
		svcmetrics.RiskModelErrors.WithLabelValues("score").Inc()
		return result, fmt.Errorf("post score: %w", err)
	}

	result.Symbol = symbol
	result.Timestamp = time.Now()
	result.Score = sr.Score
	result.FairValue = sr.FairValue
	result.Confidence = sr.Confidence
	return result, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	return c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
}

func (c *Client) postJSONWithRetry(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	var err error
	for i := 1; i <= c.retries; i++ {
		err = c.postJSON(ctx, path, payload, dest)
		if err == nil {
			return nil
		}
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

var _ domsvc.RiskScorer = (*Client)(nil)
