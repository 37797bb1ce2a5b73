package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dudeandirt/lawncare/config/db"
	"github.com/dudeandirt/lawncare/controllers/user_controller"
	middleware "github.com/dudeandirt/lawncare/middlewares"
	"github.com/dudeandirt/lawncare/middlewares/auth"
)

func RegisterUserRoutes(router *gin.Engine) {
	userController := user_controller.NewUserController(db.DB)

	// Public routes
	router.POST("/register", middleware.CombinedRateLimiter("register", "10-2m", "30-60m"), userController.Register)
	router.POST("/login", middleware.CombinedRateLimiter("login", "10-2m", "30-30m"), userController.Login)

	// Protected routes
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/logout", middleware.CombinedRateLimiter("logout", "5-1m", "20-10m"), userController.Logout)

		protected.GET("/profile", middleware.NewRateLimiter("15-30s", "profile"), userController.GetProfile)
		protected.POST("/profile/update", middleware.CombinedRateLimiter("profile-update", "5-1m", "10-5m"), userController.UpdateProfile)
	}
}
