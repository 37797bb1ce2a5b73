package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dudeandirt/lawncare/config/db"
	"github.com/dudeandirt/lawncare/config/redis"
	"github.com/dudeandirt/lawncare/controllers/booking_controller"
	"github.com/dudeandirt/lawncare/controllers/catalog_controller"
	middleware "github.com/dudeandirt/lawncare/middlewares"
	"github.com/dudeandirt/lawncare/middlewares/auth"
	"github.com/dudeandirt/lawncare/models/draft_models"
	"github.com/dudeandirt/lawncare/utils/mail"
)

func RegisterBookingRoutes(router *gin.Engine) {
	drafts := draft_models.NewManager(draft_models.NewRedisStore(redis.GetRedisClient()))
	bookingController := booking_controller.NewBookingController(db.DB, drafts, mail.NewMailerFromEnv())
	catalogController := catalog_controller.NewCatalogController(db.DB)

	// Public catalog
	router.GET("/api/services", middleware.NewRateLimiter("30-30s", "services"), catalogController.Services)
	router.GET("/api/products", middleware.NewRateLimiter("30-30s", "products"), catalogController.Products)

	// The booking wizard is for signed-in users only.
	protected := router.Group("/booking")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/step1", middleware.NewRateLimiter("30-30s", "booking-step1"), bookingController.Step1Services)
		protected.POST("/step2", middleware.CombinedRateLimiter("booking-step2", "15-1m", "60-10m"), bookingController.Step2)
		protected.POST("/step3", middleware.CombinedRateLimiter("booking-step3", "15-1m", "60-10m"), bookingController.Step3)
		protected.POST("/step4", middleware.CombinedRateLimiter("booking-step4", "10-1m", "30-10m"), bookingController.Step4Confirm)
		protected.GET("/draft", middleware.NewRateLimiter("30-30s", "booking-draft"), bookingController.GetDraft)
	}
}
