package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/owenj053/netone-backend/internal/config"
	"github.com/owenj053/netone-backend/internal/domain"
)

// Provider looks up current conditions by coordinates.
type Provider interface {
	Current(ctx context.Context, lat, lon float64) (*domain.WeatherSnapshot, error)
}

type httpProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider builds a provider against an Open-Meteo compatible
// endpoint. Returns nil when no base URL is configured, which disables
// enrichment.
func NewHTTPProvider(cfg config.WeatherConfig) Provider {
	if cfg.BaseURL == "" {
		return nil
	}
	return &httpProvider{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type currentWeatherResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
}

func (p *httpProvider) Current(ctx context.Context, lat, lon float64) (*domain.WeatherSnapshot, error) {
	endpoint := fmt.Sprintf("%s?latitude=%s&longitude=%s&current_weather=true",
		p.baseURL,
		url.QueryEscape(fmt.Sprintf("%.4f", lat)),
		url.QueryEscape(fmt.Sprintf("%.4f", lon)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}

	observedAt := time.Now().UTC()
	if ts, err := time.Parse("2006-01-02T15:04", payload.CurrentWeather.Time); err == nil {
		observedAt = ts
	}

	return &domain.WeatherSnapshot{
		TemperatureC: payload.CurrentWeather.Temperature,
		WindSpeedKmh: payload.CurrentWeather.WindSpeed,
		WeatherCode:  payload.CurrentWeather.WeatherCode,
		ObservedAt:   observedAt,
		FetchedAt:    time.Now().UTC(),
	}, nil
}
