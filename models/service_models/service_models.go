package service_models

import (
	"context"
	"errors"
	"fmt"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/shared_models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrServiceNotFound is returned when a referenced service does not exist.
var ErrServiceNotFound = errors.New("service not found")

// Service represents a lawn-care service in the catalog. Services are
// immutable from the booking flow's perspective.
type Service struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	DurationHours int       `json:"duration_hours"`
	Active        bool      `json:"active"`
}

// NewService creates a new Service instance with a generated ID.
func NewService(name, description string, price float64, durationHours int) (*Service, error) {
	id, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for service: %w", err)
	}
	return &Service{
		ID:            id,
		Name:          name,
		Description:   description,
		Price:         price,
		DurationHours: durationHours,
		Active:        true,
	}, nil
}

// CreateService inserts a new service record into the database.
func CreateService(ctx context.Context, db *pgxpool.Pool, service *Service) (*Service, error) {
	logger.InfoLogger.Infof("Attempting to create service %q", service.Name)

	if service.Price < 0 {
		return nil, fmt.Errorf("service price must be non-negative")
	}

	query := `
		INSERT INTO services (id, name, description, price, duration_hours, active)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.Exec(ctx, query,
		service.ID, service.Name, service.Description,
		service.Price, service.DurationHours, service.Active,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert service into database: %v", err)
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	logger.InfoLogger.Infof("Service with ID %s created successfully", service.ID)
	return service, nil
}

// GetServiceByID fetches a service record by its ID.
func GetServiceByID(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*Service, error) {
	service := &Service{}
	query := `
		SELECT id, name, description, price, duration_hours, active
		FROM services
		WHERE id = $1`

	err := db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.DurationHours,
		&service.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Service with ID %s not found", id)
			return nil, ErrServiceNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch service %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching service: %w", err)
	}

	return service, nil
}

// GetActiveServices returns all active catalog entries ordered by name.
func GetActiveServices(ctx context.Context, db *pgxpool.Pool) ([]Service, error) {
	query := `
		SELECT id, name, description, price, duration_hours, active
		FROM services
		WHERE active = TRUE
		ORDER BY name`

	rows, err := db.Query(ctx, query)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch active services: %v", err)
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationHours, &s.Active)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to scan service row: %v", err)
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}

	logger.InfoLogger.Infof("Fetched %d active services", len(services))
	return services, nil
}

// SetServiceActive toggles a service's active flag.
func SetServiceActive(ctx context.Context, db *pgxpool.Pool, id uuid.UUID, active bool) error {
	cmdTag, err := db.Exec(ctx, `UPDATE services SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update service %s active flag: %v", id, err)
		return fmt.Errorf("failed to update service: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}
