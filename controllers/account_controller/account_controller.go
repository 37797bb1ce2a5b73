package account_controller

import (
	"net/http"
	"time"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/booking_models"
	"github.com/dudeandirt/lawncare/models/shared_models"
	"github.com/dudeandirt/lawncare/models/user_models"
	"github.com/dudeandirt/lawncare/utils"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed rewards: 100 per completed booking, 25 per confirmed booking, plus
// a one-time welcome bonus.
const (
	SeedsPerCompleted = 100
	SeedsPerConfirmed = 25
	WelcomeBonusSeeds = 500
)

// AccountController serves the authenticated user's account pages:
// points, receipts, stats and booking history.
type AccountController struct {
	DB *pgxpool.Pool
}

// NewAccountController creates an AccountController.
func NewAccountController(db *pgxpool.Pool) *AccountController {
	return &AccountController{DB: db}
}

// Points handles GET /points: the seeds loyalty balance.
func (ac *AccountController) Points(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	completed, err := booking_models.CountByUserAndStatus(ctx, ac.DB, userID, shared_models.BookingStatusCompleted)
	if err != nil {
		logger.ErrorLogger.Errorf("Points page error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error loading points"})
		return
	}
	confirmed, err := booking_models.CountByUserAndStatus(ctx, ac.DB, userID, shared_models.BookingStatusConfirmed)
	if err != nil {
		logger.ErrorLogger.Errorf("Points page error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error loading points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"seeds": gin.H{
			"total_seeds":        completed*SeedsPerCompleted + confirmed*SeedsPerConfirmed + WelcomeBonusSeeds,
			"completed_bookings": completed,
			"confirmed_bookings": confirmed,
			"welcome_bonus":      WelcomeBonusSeeds,
		},
	})
}

// Receipts handles GET /receipts: completed bookings, newest scheduled
// first.
func (ac *AccountController) Receipts(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	receipts, err := booking_models.GetCompletedByUser(c.Request.Context(), ac.DB, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Receipts page error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error loading receipts"})
		return
	}
	if receipts == nil {
		receipts = []booking_models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "receipts": receipts})
}

// Bookings handles GET /api/bookings: the user's booking history.
func (ac *AccountController) Bookings(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	bookings, err := booking_models.GetBookingsByUser(c.Request.Context(), ac.DB, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Bookings API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching bookings"})
		return
	}
	if bookings == nil {
		bookings = []booking_models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings})
}

// Stats handles GET /api/stats: dashboard summary numbers.
func (ac *AccountController) Stats(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	user, err := user_models.GetUserByID(ctx, ac.DB, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Stats API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching stats"})
		return
	}

	bookings, err := booking_models.GetBookingsByUser(ctx, ac.DB, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Stats API error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching stats"})
		return
	}

	var completed, pending, confirmed int
	var totalSpent float64
	for _, b := range bookings {
		switch b.Status {
		case shared_models.BookingStatusCompleted:
			completed++
			totalSpent += b.TotalPrice
		case shared_models.BookingStatusPending:
			pending++
		case shared_models.BookingStatusConfirmed:
			confirmed++
			totalSpent += b.TotalPrice
		}
	}

	stats := gin.H{
		"total_bookings":     len(bookings),
		"completed_bookings": completed,
		"pending_bookings":   pending,
		"confirmed_bookings": confirmed,
		"total_spent":        totalSpent,
		"member_since":       user.CreatedAt.Format("January 2006"),
		"next_booking":       nil,
	}

	// Find the next upcoming booking.
	now := time.Now()
	var next *booking_models.Booking
	for i := range bookings {
		b := &bookings[i]
		if !b.ScheduledDate.After(now) {
			continue
		}
		if b.Status != shared_models.BookingStatusConfirmed && b.Status != shared_models.BookingStatusPending {
			continue
		}
		if next == nil || b.ScheduledDate.Before(next.ScheduledDate) {
			next = b
		}
	}
	if next != nil {
		stats["next_booking"] = gin.H{
			"service": next.ServiceName,
			"date":    next.ScheduledDate.Format("January 2, 2006"),
			"time":    next.ScheduledDate.Format("3:04 PM"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
