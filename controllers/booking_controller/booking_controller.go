package booking_controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/booking_models"
	"github.com/dudeandirt/lawncare/models/draft_models"
	"github.com/dudeandirt/lawncare/models/product_models"
	"github.com/dudeandirt/lawncare/models/service_models"
	"github.com/dudeandirt/lawncare/models/user_models"
	"github.com/dudeandirt/lawncare/utils"
	"github.com/dudeandirt/lawncare/utils/mail"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingController drives the four-step booking wizard: service choice,
// product choice, scheduling, and confirmation. Steps 1-3 only touch the
// session draft; step 4 is the finalizer and the only durable write.
type BookingController struct {
	DB     *pgxpool.Pool
	Drafts *draft_models.Manager
	Mailer *mail.Mailer

	// Indirections over the database operations so the wizard can be
	// exercised without a live pool.
	lookupService func(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*service_models.Service, error)
	insertBooking func(ctx context.Context, db *pgxpool.Pool, booking *booking_models.Booking) error
}

// NewBookingController creates a BookingController.
func NewBookingController(db *pgxpool.Pool, drafts *draft_models.Manager, mailer *mail.Mailer) *BookingController {
	return &BookingController{
		DB:            db,
		Drafts:        drafts,
		Mailer:        mailer,
		lookupService: service_models.GetServiceByID,
		insertBooking: booking_models.CreateBookingTx,
	}
}

// noDraftResponse tells the client to route back to step 1. This is a
// navigation signal, not a server fault.
func noDraftResponse(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":  false,
		"message":  "No booking data found",
		"redirect": "/booking/step1",
	})
}

// Step1Services handles GET /booking/step1: lists active services.
func (bc *BookingController) Step1Services(c *gin.Context) {
	services, err := service_models.GetActiveServices(c.Request.Context(), bc.DB)
	if err != nil {
		logger.ErrorLogger.Errorf("Booking step1 error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error loading services"})
		return
	}
	if services == nil {
		services = []service_models.Service{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// step2Request carries either a service choice or a product selection.
// The client-supplied subtotal is accepted for compatibility, but the
// server recomputes it from the product catalog.
type step2Request struct {
	ServiceID     *string                          `json:"service_id"`
	Products      *[]draft_models.ProductSelection `json:"products"`
	ProductsTotal float64                          `json:"products_total"`
}

// Step2 handles POST /booking/step2. A body carrying service_id selects
// the service (initializing the draft); a body carrying products attaches
// the product selection to an existing draft.
func (bc *BookingController) Step2(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req step2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Errorf("Booking step2 bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error processing request"})
		return
	}

	switch {
	case req.ServiceID != nil:
		serviceID, err := uuid.Parse(*req.ServiceID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid service id"})
			return
		}

		service, err := bc.lookupService(c.Request.Context(), bc.DB, serviceID)
		if err != nil {
			if errors.Is(err, service_models.ErrServiceNotFound) {
				c.JSON(http.StatusOK, gin.H{"success": false, "message": "Service not found"})
				return
			}
			logger.ErrorLogger.Errorf("Booking step2 service lookup error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error processing request"})
			return
		}
		if !service.Active {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Service is not available"})
			return
		}

		if _, err := bc.Drafts.ChooseService(c.Request.Context(), userID, service.ID, service.Name, service.Price); err != nil {
			logger.ErrorLogger.Errorf("Booking step2 POST error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error processing request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case req.Products != nil:
		if _, err := bc.Drafts.ChooseProducts(c.Request.Context(), userID, *req.Products); err != nil {
			if errors.Is(err, draft_models.ErrNoDraft) {
				noDraftResponse(c)
				return
			}
			if errors.Is(err, product_models.ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product selection"})
				return
			}
			logger.ErrorLogger.Errorf("Booking step2 POST error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error processing request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error processing request"})
	}
}

type step3Request struct {
	ScheduledDate       string `json:"scheduled_date" binding:"required"`
	ScheduledTime       string `json:"scheduled_time" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
}

// Step3 handles POST /booking/step3: attaches the schedule to the draft.
func (bc *BookingController) Step3(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req step3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Errorf("Booking step3 bind error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Error processing request"})
		return
	}

	if _, err := bc.Drafts.Schedule(c.Request.Context(), userID, req.ScheduledDate, req.ScheduledTime, req.SpecialInstructions); err != nil {
		if errors.Is(err, draft_models.ErrNoDraft) {
			noDraftResponse(c)
			return
		}
		logger.ErrorLogger.Errorf("Booking step3 POST error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error processing request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Step4Confirm handles POST /booking/step4, the finalizer. On success a
// durable booking exists and the draft is cleared; on any failure the
// draft is left intact so the user can retry without re-entering steps.
func (bc *BookingController) Step4Confirm(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	ctx := c.Request.Context()

	draft, err := bc.Drafts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, draft_models.ErrNoDraft) {
			noDraftResponse(c)
			return
		}
		logger.ErrorLogger.Errorf("Booking confirmation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error confirming booking"})
		return
	}

	service, err := bc.lookupService(ctx, bc.DB, draft.ServiceID)
	if err != nil {
		if errors.Is(err, service_models.ErrServiceNotFound) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Service not found"})
			return
		}
		logger.ErrorLogger.Errorf("Booking confirmation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error confirming booking"})
		return
	}

	booking, err := booking_models.BuildBooking(draft, userID, service)
	if err != nil {
		if errors.Is(err, booking_models.ErrInvalidSchedule) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid scheduled date or time"})
			return
		}
		logger.ErrorLogger.Errorf("Booking confirmation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error confirming booking"})
		return
	}

	if err := bc.insertBooking(ctx, bc.DB, booking); err != nil {
		// Draft stays intact so the user can retry.
		logger.ErrorLogger.Errorf("Booking confirmation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error confirming booking"})
		return
	}

	if err := bc.Drafts.Clear(ctx, userID); err != nil {
		// The booking is committed; a leftover draft expires on its TTL.
		logger.ErrorLogger.Errorf("Failed to clear draft for user %s after booking %s: %v", userID, booking.ID, err)
	}

	bc.sendConfirmationMail(c, userID, booking)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking confirmed successfully!",
		"booking": booking,
	})
}

func (bc *BookingController) sendConfirmationMail(c *gin.Context, userID uuid.UUID, booking *booking_models.Booking) {
	if !bc.Mailer.Enabled() {
		return
	}
	user, err := user_models.GetUserByID(c.Request.Context(), bc.DB, userID)
	if err != nil {
		logger.WarnLogger.Warnf("Skipping confirmation email for user %s: %v", userID, err)
		return
	}
	if err := bc.Mailer.SendBookingConfirmation(user.Email, user.FullName, booking); err != nil {
		logger.WarnLogger.Warnf("Confirmation email for booking %s failed: %v", booking.ID, err)
	}
}

// GetDraft handles GET /booking/draft: lets the client resume the wizard.
func (bc *BookingController) GetDraft(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	draft, err := bc.Drafts.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, draft_models.ErrNoDraft) {
			noDraftResponse(c)
			return
		}
		logger.ErrorLogger.Errorf("Booking draft fetch error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error loading booking data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "draft": draft})
}
