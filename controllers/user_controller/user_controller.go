package user_controller

import (
	"net/http"
	"strings"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/user_models"
	"github.com/dudeandirt/lawncare/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserController handles registration, login and profile management.
type UserController struct {
	DB *pgxpool.Pool
}

// NewUserController creates a new UserController
func NewUserController(db *pgxpool.Pool) *UserController {
	return &UserController{DB: db}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register handles POST /register.
func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Errorf("Invalid register payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	required := map[string]string{
		"username":  req.Username,
		"email":     req.Email,
		"password":  req.Password,
		"full_name": req.FullName,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": field + " is required"})
			return
		}
	}

	ctx := c.Request.Context()

	emailTaken, err := user_models.IsEmailRegistered(ctx, uc.DB, req.Email)
	if err != nil {
		logger.ErrorLogger.Errorf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed. Please try again."})
		return
	}
	if emailTaken {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
		return
	}

	usernameTaken, err := user_models.IsUsernameTaken(ctx, uc.DB, req.Username)
	if err != nil {
		logger.ErrorLogger.Errorf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed. Please try again."})
		return
	}
	if usernameTaken {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Username already taken"})
		return
	}

	user, err := user_models.CreateUser(ctx, uc.DB, req.Username, req.Email, req.Password, req.FullName, req.Phone, req.Address)
	if err != nil {
		logger.ErrorLogger.Errorf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed. Please try again."})
		return
	}

	// Log the new user straight in, as the original flow did.
	_, accessToken, refreshToken, err := user_models.LoginUser(ctx, uc.DB, req.Email, req.Password)
	if err != nil {
		logger.ErrorLogger.Errorf("Post-registration login error for user %s: %v", user.ID, err)
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Registration successful", "user": user})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"message":       "Registration successful",
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login.
func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	user, accessToken, refreshToken, err := user_models.LoginUser(c.Request.Context(), uc.DB, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Login successful",
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout handles POST /logout.
func (uc *UserController) Logout(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	if err := user_models.LogoutUser(c.Request.Context(), userID); err != nil {
		logger.ErrorLogger.Errorf("Logout error for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// GetProfile handles GET /profile.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	user, err := user_models.GetUserByID(c.Request.Context(), uc.DB, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Profile fetch error for user %s: %v", userID, err)
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

// UpdateProfile handles POST /profile/update.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Errorf("Invalid update profile payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	updates := make(map[string]interface{})
	if req.FullName != nil && *req.FullName != "" {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "No changes detected for profile update"})
		return
	}

	if err := user_models.UpdateUserFields(c.Request.Context(), uc.DB, userID, updates); err != nil {
		logger.ErrorLogger.Errorf("Profile update error for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error updating profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
}
