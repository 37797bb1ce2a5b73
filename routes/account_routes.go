package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dudeandirt/lawncare/config/db"
	"github.com/dudeandirt/lawncare/controllers/account_controller"
	middleware "github.com/dudeandirt/lawncare/middlewares"
	"github.com/dudeandirt/lawncare/middlewares/auth"
)

func RegisterAccountRoutes(router *gin.Engine) {
	accountController := account_controller.NewAccountController(db.DB)

	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/points", middleware.NewRateLimiter("15-30s", "points"), accountController.Points)
		protected.GET("/receipts", middleware.NewRateLimiter("15-30s", "receipts"), accountController.Receipts)
		protected.GET("/api/stats", middleware.NewRateLimiter("15-30s", "stats"), accountController.Stats)
		protected.GET("/api/bookings", middleware.NewRateLimiter("15-30s", "bookings"), accountController.Bookings)
	}
}
