package shared_models

import (
	"fmt"
	"time"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Booking lifecycle states. A booking is created as "confirmed" by the
// finalizer; the other states are advanced by operational processes.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	RefreshTokenPrefix = "refresh_token:"

	AccessTokenExpiry  = time.Hour * 1
	RefreshTokenExpiry = time.Hour * 24 * 30
)

// GenerateUUIDv7 generates a new UUIDv7
func GenerateUUIDv7() (uuid.UUID, error) {
	return uuid.NewV7()
}

// GenerateAccessToken issues a signed short-lived access token for a user.
func GenerateAccessToken(userID uuid.UUID, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
		"nbf":  now.Unix(),
		"type": "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(utils.GetJWTSecret())
	if err != nil {
		logger.ErrorLogger.Errorf("failed to sign access token: %v", err)
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

// GenerateRefreshToken issues a signed long-lived refresh token for a user.
func GenerateRefreshToken(userID uuid.UUID, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
		"nbf":  now.Unix(),
		"type": "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(utils.GetJWTRefreshSecret())
	if err != nil {
		logger.ErrorLogger.Errorf("failed to sign refresh token: %v", err)
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return tokenString, nil
}
