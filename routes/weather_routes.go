package routes

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dudeandirt/lawncare/clients"
	"github.com/dudeandirt/lawncare/controllers/weather_controller"
	"github.com/dudeandirt/lawncare/logger"
	middleware "github.com/dudeandirt/lawncare/middlewares"
	"github.com/dudeandirt/lawncare/middlewares/auth"
	"github.com/dudeandirt/lawncare/utils/weathercache"
)

const defaultWeatherCachePath = "weather_cache.json"

func RegisterWeatherRoutes(router *gin.Engine) {
	path := os.Getenv("WEATHER_CACHE_FILE")
	if path == "" {
		path = defaultWeatherCachePath
	}

	cache := weathercache.New(path)
	logger.InfoLogger.Infof("Weather cache file: %s", path)

	weatherController := weather_controller.NewWeatherController(cache, clients.NewWeatherstackClient())

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/api/weather", middleware.NewRateLimiter("30-1m", "weather"), weatherController.GetWeather)
		protected.GET("/api/weather/status", middleware.NewRateLimiter("15-1m", "weather-status"), weatherController.Status)
	}
}
