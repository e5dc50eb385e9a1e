package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/torresnicolas0/clima-chatbot/src/config"
	"github.com/torresnicolas0/clima-chatbot/src/models"
	"github.com/torresnicolas0/clima-chatbot/src/resilience"
)

const currentWeatherPath = "/data/2.5/weather"

var (
	ErrCityNotFound = errors.New("city not found")
	ErrUnauthorized = errors.New("weather api key rejected")
	errMissingKey   = errors.New("openweather api key is not configured")
)

// OpenWeatherProvider implements models.WeatherProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	baseURL string
	httpCfg resilience.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(cfg *config.WeatherConfig) *OpenWeatherProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	interval := cfg.RetryInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	return &OpenWeatherProvider{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpCfg: resilience.HTTPClientConfig{
			Client: &http.Client{Timeout: timeout},
			Backoff: resilience.BackoffConfig{
				MaxRetries:      cfg.MaxRetries,
				InitialInterval: interval,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: resilience.NewBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, city, apiKey, units, language string) (*models.WeatherRecord, error) {
	if apiKey == "" {
		return nil, errMissingKey
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("appid", apiKey)
		values.Set("q", city)
		values.Set("units", units)
		values.Set("lang", language)

		return http.NewRequest(http.MethodGet, p.baseURL+currentWeatherPath+"?"+values.Encode(), nil)
	}

	resp, err := resilience.DoRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		var statusErr *resilience.StatusError
		if errors.As(err, &statusErr) {
			switch statusErr.StatusCode {
			case http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", ErrCityNotFound, city)
			case http.StatusUnauthorized:
				return nil, ErrUnauthorized
			}
		}
		return nil, fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	var record models.WeatherRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode openweather response: %w", err)
	}

	return &record, nil
}
