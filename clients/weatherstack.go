package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const defaultWeatherAPIURL = "http://api.weatherstack.com/current"

// WeatherClientWrapper provides an interface for the external weather
// provider. The interface allows the gateway to be tested with a stubbed
// provider instead of live HTTP.
type WeatherClientWrapper interface {
	Current(ctx context.Context, location string) (json.RawMessage, error)
}

// WeatherstackClient implements WeatherClientWrapper against the
// weatherstack current-conditions endpoint.
type WeatherstackClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

// NewWeatherstackClient builds a client from the environment. The HTTP
// client carries the provider call's 10-second bound.
func NewWeatherstackClient() *WeatherstackClient {
	baseURL := os.Getenv("WEATHER_API_URL")
	if baseURL == "" {
		baseURL = defaultWeatherAPIURL
	}
	return &WeatherstackClient{
		APIKey:  os.Getenv("WEATHER_API_KEY"),
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches current conditions for a free-text location. A non-200
// status and a provider-reported error body are both returned as errors;
// the gateway treats every failure mode identically.
func (w *WeatherstackClient) Current(ctx context.Context, location string) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("access_key", w.APIKey)
	params.Set("query", location)
	params.Set("units", "f")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}
	if errBody, ok := probe["error"]; ok {
		return nil, fmt.Errorf("weather provider error: %s", string(errBody))
	}

	return body, nil
}
