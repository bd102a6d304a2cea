package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	exchangeRateBaseURL = "https://v6.exchangerate-api.com/v6"
	exchangeCacheTTL    = 24 * time.Hour
	exchangeHTTPTimeout = 10 * time.Second
)

// SupportedCurrencies is the fixed set offered for estimated values.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "CAD", "AUD", "JPY", "MXN", "BRL"}

// ExchangeService fetches currency rates and caches them in Redis for a
// day. A nil Redis client degrades to an uncached fetch per call.
type ExchangeService struct {
	APIKey  string
	BaseURL string
	Redis   *redis.Client
	Client  *http.Client
}

func NewExchangeService(apiKey string, rdb *redis.Client) *ExchangeService {
	return &ExchangeService{
		APIKey:  apiKey,
		BaseURL: exchangeRateBaseURL,
		Redis:   rdb,
		Client:  &http.Client{Timeout: exchangeHTTPTimeout},
	}
}

type exchangeRateResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// Rates returns the conversion table for a base currency.
func (s *ExchangeService) Rates(ctx context.Context, base string) (map[string]float64, error) {
	cacheKey := "exchange_rates:" + base

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var rates map[string]float64
			if err := json.Unmarshal([]byte(cached), &rates); err == nil {
				return rates, nil
			}
		}
	}

	url := fmt.Sprintf("%s/%s/latest/%s", s.BaseURL, s.APIKey, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rates: http %s", resp.Status)
	}

	var payload exchangeRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("exchange rates: decode: %w", err)
	}
	if payload.Result != "success" || len(payload.ConversionRates) == 0 {
		return nil, fmt.Errorf("exchange rates: provider result %q", payload.Result)
	}

	if s.Redis != nil {
		if data, err := json.Marshal(payload.ConversionRates); err == nil {
			// A failed cache write only costs a refetch tomorrow.
			s.Redis.Set(ctx, cacheKey, data, exchangeCacheTTL)
		}
	}

	return payload.ConversionRates, nil
}

// Convert translates an amount between two supported currencies.
func (s *ExchangeService) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}

	rates, err := s.Rates(ctx, from)
	if err != nil {
		return 0, err
	}

	rate, ok := rates[to]
	if !ok {
		return 0, fmt.Errorf("exchange rates: unsupported currency %q", to)
	}
	return amount * rate, nil
}
