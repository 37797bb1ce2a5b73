package db

import (
	"context"
	"fmt"
	"time"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/shared_models"
	"github.com/dudeandirt/lawncare/models/user_models"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL,
		phone TEXT DEFAULT '',
		address TEXT DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT DEFAULT '',
		price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		duration_hours INT NOT NULL DEFAULT 2,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		service_id UUID NOT NULL REFERENCES services(id),
		scheduled_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		special_instructions TEXT DEFAULT '',
		total_price DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_services_active ON services(active)`,
}

// InitDatabase creates the tables and seeds demo data in the same way the
// service has always shipped: a demo account, the six lawn-care services,
// and two sample bookings for the demo account.
func InitDatabase(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := seedDemoData(ctx, pool); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}
	return nil
}

func seedDemoData(ctx context.Context, pool *pgxpool.Pool) error {
	var demoUserID string
	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, "demo@dudeandirt.com").Scan(&demoUserID)
	if err != nil {
		passwordHash, hashErr := user_models.HashPassword("demo123")
		if hashErr != nil {
			return fmt.Errorf("failed to hash demo password: %w", hashErr)
		}

		id, idErr := shared_models.GenerateUUIDv7()
		if idErr != nil {
			return idErr
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO users (id, username, email, password_hash, full_name, phone, address)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, "demo_user", "demo@dudeandirt.com", passwordHash,
			"Demo User", "(555) 123-4567", "123 Demo Street, Demo City, DC 12345",
		)
		if err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}
		demoUserID = id.String()
		logger.InfoLogger.Info("Created demo user")
	}

	var serviceCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM services`).Scan(&serviceCount); err != nil {
		return err
	}

	if serviceCount == 0 {
		seedServices := []struct {
			name        string
			description string
			price       float64
			hours       int
		}{
			{"Lawn Mowing", "Professional lawn mowing service", 50.0, 1},
			{"Fertilization", "Organic fertilization treatment", 75.0, 1},
			{"Weed Control", "Professional weed control treatment", 65.0, 1},
			{"Aeration", "Lawn aeration service", 100.0, 2},
			{"Overseeding", "Grass overseeding service", 85.0, 2},
			{"Leaf Removal", "Fall leaf cleanup service", 60.0, 2},
		}

		for _, s := range seedServices {
			id, err := shared_models.GenerateUUIDv7()
			if err != nil {
				return err
			}
			_, err = pool.Exec(ctx, `
				INSERT INTO services (id, name, description, price, duration_hours, active)
				VALUES ($1, $2, $3, $4, $5, TRUE)`,
				id, s.name, s.description, s.price, s.hours,
			)
			if err != nil {
				return fmt.Errorf("failed to seed service %q: %w", s.name, err)
			}
		}
		logger.InfoLogger.Info("Created sample services")
	}

	var bookingCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, demoUserID).Scan(&bookingCount); err != nil {
		return err
	}

	if bookingCount == 0 {
		type sample struct {
			serviceName  string
			scheduled    time.Time
			status       string
			totalPrice   float64
			instructions string
		}
		samples := []sample{
			{"Lawn Mowing", time.Now().Add(7 * 24 * time.Hour), "confirmed", 50.0, "Please trim around the flower beds carefully"},
			{"Fertilization", time.Now().Add(-30 * 24 * time.Hour), "completed", 75.0, "Spring fertilization"},
		}

		for _, s := range samples {
			var serviceID string
			if err := pool.QueryRow(ctx, `SELECT id FROM services WHERE name = $1`, s.serviceName).Scan(&serviceID); err != nil {
				return fmt.Errorf("seed service %q not found: %w", s.serviceName, err)
			}
			id, err := shared_models.GenerateUUIDv7()
			if err != nil {
				return err
			}
			_, err = pool.Exec(ctx, `
				INSERT INTO bookings (id, user_id, service_id, scheduled_date, status, special_instructions, total_price)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				id, demoUserID, serviceID, s.scheduled, s.status, s.instructions, s.totalPrice,
			)
			if err != nil {
				return fmt.Errorf("failed to seed booking: %w", err)
			}
		}
		logger.InfoLogger.Info("Created sample bookings")
	}

	return nil
}
