// Package currency serves KRW exchange rates with static defaults when
// the upstream API is unreachable or unconfigured.
package currency

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"time"

	"emarknews/internal/logger"
)

const (
	ratesURL         = "https://api.exchangerate-api.com/v4/latest/USD"
	requestTimeout   = 5 * time.Second
	maxResponseBytes = 1 << 20
)

// Rate is one currency quoted against KRW.
type Rate struct {
	Rate          float64 `json:"rate"`
	Change        float64 `json:"change"`
	ChangePercent string  `json:"changePercent"`
	Trend         string  `json:"trend"`
}

// Rates is the full quote set plus provenance.
type Rates struct {
	Rates     map[string]Rate `json:"rates"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
}

type Service struct {
	apiKey string
	http   *http.Client
}

func NewService(apiKey string) *Service {
	return &Service{
		apiKey: apiKey,
		http:   &http.Client{Timeout: requestTimeout},
	}
}

func defaultRates() map[string]Rate {
	return map[string]Rate{
		"USD": {Rate: 1250, Change: 0, ChangePercent: "0.00", Trend: "neutral"},
		"JPY": {Rate: 920, Change: 0, ChangePercent: "0.00", Trend: "neutral"},
		"EUR": {Rate: 1350, Change: 0, ChangePercent: "0.00", Trend: "neutral"},
	}
}

type upstreamResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// GetRates returns live quotes when possible and static defaults on any
// failure. It never returns an error.
func (s *Service) GetRates(ctx context.Context) *Rates {
	if s.apiKey == "" {
		return &Rates{Rates: defaultRates(), Source: "default", Timestamp: time.Now()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ratesURL, nil)
	if err != nil {
		return &Rates{Rates: defaultRates(), Source: "error", Timestamp: time.Now()}
	}

	resp, err := s.http.Do(req)
	if err != nil {
		logger.Warn("currency fetch failed", "error", err)
		return &Rates{Rates: defaultRates(), Source: "error", Timestamp: time.Now()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("currency fetch failed", "status", resp.StatusCode)
		return &Rates{Rates: defaultRates(), Source: "error", Timestamp: time.Now()}
	}

	var payload upstreamResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil || len(payload.Rates) == 0 {
		return &Rates{Rates: defaultRates(), Source: "fallback", Timestamp: time.Now()}
	}

	krw := orDefault(payload.Rates["KRW"], 1250)
	jpy := orDefault(payload.Rates["JPY"], 100)
	eur := orDefault(payload.Rates["EUR"], 0.85)

	return &Rates{
		Rates: map[string]Rate{
			"USD": {Rate: math.Round(krw), ChangePercent: "0.00", Trend: "neutral"},
			"JPY": {Rate: math.Round(krw / jpy * 100), ChangePercent: "0.00", Trend: "neutral"},
			"EUR": {Rate: math.Round(krw / eur), ChangePercent: "0.00", Trend: "neutral"},
		},
		Source:    "exchangerate-api",
		Timestamp: time.Now(),
	}
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
