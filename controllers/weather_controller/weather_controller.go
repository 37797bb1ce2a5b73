package weather_controller

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dudeandirt/lawncare/clients"
	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/utils/weathercache"
	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocation is used when the client omits the location query.
	DefaultLocation = "Miami, FL"

	// FreshnessWindow is the maximum age at which a cached entry is
	// returned without a new provider call.
	FreshnessWindow = 2 * time.Hour
)

// WeatherController serves weather lookups: cache first, then the
// external provider, then a deterministic mock. The lookup is total; it
// never fails outward.
type WeatherController struct {
	Cache     *weathercache.Cache
	Client    clients.WeatherClientWrapper
	Freshness time.Duration
}

// NewWeatherController creates a WeatherController with the default
// 2-hour freshness window.
func NewWeatherController(cache *weathercache.Cache, client clients.WeatherClientWrapper) *WeatherController {
	return &WeatherController{
		Cache:     cache,
		Client:    client,
		Freshness: FreshnessWindow,
	}
}

// CacheKey normalizes a free-text location into a cache key.
func CacheKey(location string) string {
	return "weather_" + strings.ReplaceAll(strings.ToLower(location), " ", "_")
}

// MockWeather returns the deterministic fallback payload for a location.
func MockWeather(location string) map[string]any {
	return map[string]any{
		"location": map[string]any{
			"name":    location,
			"region":  "Local Area",
			"country": "United States",
		},
		"current": map[string]any{
			"temperature":          72,
			"weather_descriptions": []string{"Partly Cloudy"},
			"weather_icons":        []string{"https://assets.weatherstack.com/images/wsymbols01_png_64/wsymbol_0002_sunny_intervals.png"},
			"humidity":             65,
			"wind_speed":           8,
			"wind_dir":             "SW",
			"uv_index":             5,
			"visibility":           10,
		},
	}
}

// Result is the outcome of a weather lookup.
type Result struct {
	Data      json.RawMessage
	Cached    bool
	Mock      bool
	Timestamp time.Time
}

// Lookup runs the cache-provider-mock chain for a location.
func (wc *WeatherController) Lookup(ctx context.Context, location string) Result {
	key := CacheKey(location)

	entry, ok, err := wc.Cache.Get(key)
	if err != nil {
		logger.ErrorLogger.Errorf("Error loading weather cache: %v", err)
	} else if ok && time.Since(entry.Timestamp) < wc.Freshness {
		logger.InfoLogger.Infof("Returning cached weather data for %s", location)
		return Result{Data: entry.Data, Cached: true, Timestamp: entry.Timestamp}
	}

	payload, err := wc.Client.Current(ctx, location)
	if err == nil {
		now := time.Now()
		if cacheErr := wc.Cache.Put(key, payload, now); cacheErr != nil {
			logger.ErrorLogger.Errorf("Error saving weather cache: %v", cacheErr)
		}
		logger.InfoLogger.Infof("Successfully fetched weather data for %s", location)
		return Result{Data: payload, Timestamp: now}
	}

	logger.WarnLogger.Warnf("Weather provider failed for %s: %v", location, err)

	mock, marshalErr := json.Marshal(MockWeather(location))
	if marshalErr != nil {
		// The mock payload is a fixed structure; this cannot happen.
		logger.ErrorLogger.Errorf("Failed to marshal mock weather payload: %v", marshalErr)
		mock = json.RawMessage(`{}`)
	}
	logger.InfoLogger.Infof("Returning mock weather data for %s", location)
	return Result{Data: mock, Mock: true, Timestamp: time.Now()}
}

// GetWeather handles GET /api/weather?location=
func (wc *WeatherController) GetWeather(c *gin.Context) {
	location := c.DefaultQuery("location", DefaultLocation)

	result := wc.Lookup(c.Request.Context(), location)

	response := gin.H{
		"success":   true,
		"data":      result.Data,
		"cached":    result.Cached,
		"timestamp": result.Timestamp.Format(time.RFC3339),
	}
	if result.Mock {
		response["mock"] = true
	}
	c.JSON(http.StatusOK, response)
}

// Status handles GET /api/weather/status. Cache introspection only.
func (wc *WeatherController) Status(c *gin.Context) {
	count, err := wc.Cache.Count()
	if err != nil {
		logger.ErrorLogger.Errorf("Weather status error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Weather status unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"cache_entries":      count,
		"api_key_configured": os.Getenv("WEATHER_API_KEY") != "",
		"timestamp":          time.Now().Format(time.RFC3339),
	})
}
