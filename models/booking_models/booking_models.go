package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/draft_models"
	"github.com/dudeandirt/lawncare/models/service_models"
	"github.com/dudeandirt/lawncare/models/shared_models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvalidSchedule is returned when a draft's scheduled date/time pair
// cannot be parsed into a single instant.
var ErrInvalidSchedule = errors.New("invalid scheduled date or time")

// scheduleLayout matches the wizard's date and time fields combined.
const scheduleLayout = "2006-01-02 15:04"

// Booking is a confirmed transaction. Its total price is a snapshot taken
// at confirmation time; later service price changes never alter it.
type Booking struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	ServiceID           uuid.UUID `json:"service_id"`
	ServiceName         string    `json:"service_name,omitempty"`
	ScheduledDate       time.Time `json:"scheduled_date"`
	Status              string    `json:"status"`
	SpecialInstructions string    `json:"special_instructions"`
	TotalPrice          float64   `json:"total_price"`
	CreatedAt           time.Time `json:"created_at"`
}

// BuildBooking validates a completed draft against its service and
// assembles the booking record the finalizer will persist. It performs no
// I/O: the schedule is parsed, the total is computed as the service price
// plus the draft's product subtotal, and the status is set to confirmed.
func BuildBooking(draft *draft_models.Draft, userID uuid.UUID, service *service_models.Service) (*Booking, error) {
	scheduledAt, err := time.Parse(scheduleLayout, fmt.Sprintf("%s %s", draft.ScheduledDate, draft.ScheduledTime))
	if err != nil {
		logger.WarnLogger.Warnf("Failed to parse schedule %q %q for user %s: %v",
			draft.ScheduledDate, draft.ScheduledTime, userID, err)
		return nil, ErrInvalidSchedule
	}

	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}

	return &Booking{
		ID:                  id,
		UserID:              userID,
		ServiceID:           service.ID,
		ServiceName:         service.Name,
		ScheduledDate:       scheduledAt,
		Status:              shared_models.BookingStatusConfirmed,
		SpecialInstructions: draft.SpecialInstructions,
		TotalPrice:          service.Price + draft.ProductsTotal,
		CreatedAt:           time.Now(),
	}, nil
}

// CreateBookingTx persists a booking inside a transaction so a failure
// partway through never leaves a half-written row.
func CreateBookingTx(ctx context.Context, db *pgxpool.Pool, booking *Booking) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to begin booking transaction: %v", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO bookings (
			id, user_id, service_id, scheduled_date, status,
			special_instructions, total_price, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = tx.Exec(ctx, query,
		booking.ID, booking.UserID, booking.ServiceID, booking.ScheduledDate,
		booking.Status, booking.SpecialInstructions, booking.TotalPrice, booking.CreatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking for user %s: %v", booking.UserID, err)
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.ErrorLogger.Errorf("Failed to commit booking for user %s: %v", booking.UserID, err)
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s created successfully for user %s (total %.2f)",
		booking.ID, booking.UserID, booking.TotalPrice)
	return nil
}

// UpdateBookingStatus advances a booking's status. Used by operational
// processes, not by the booking flow itself.
func UpdateBookingStatus(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, status string) error {
	cmdTag, err := db.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, bookingID, status)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("booking with ID %s not found for update", bookingID)
	}
	return nil
}

const bookingSelect = `
	SELECT b.id, b.user_id, b.service_id, s.name, b.scheduled_date,
	       b.status, b.special_instructions, b.total_price, b.created_at
	FROM bookings b
	JOIN services s ON s.id = b.service_id`

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.ServiceID, &b.ServiceName, &b.ScheduledDate,
			&b.Status, &b.SpecialInstructions, &b.TotalPrice, &b.CreatedAt,
		)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to scan booking row: %v", err)
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

// GetBookingsByUser retrieves a user's bookings, newest first.
func GetBookingsByUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) ([]Booking, error) {
	rows, err := db.Query(ctx, bookingSelect+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return scanBookings(rows)
}

// GetCompletedByUser retrieves a user's completed bookings ordered by
// scheduled date, newest first. Backs the receipts page.
func GetCompletedByUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) ([]Booking, error) {
	rows, err := db.Query(ctx,
		bookingSelect+` WHERE b.user_id = $1 AND b.status = $2 ORDER BY b.scheduled_date DESC`,
		userID, shared_models.BookingStatusCompleted)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch completed bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return scanBookings(rows)
}

// CountByUserAndStatus counts a user's bookings in a given status.
func CountByUserAndStatus(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, status string) (int, error) {
	var count int
	err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND status = $2`,
		userID, status).Scan(&count)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to count %s bookings for user %s: %v", status, userID, err)
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
