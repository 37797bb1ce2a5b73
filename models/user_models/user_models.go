package user_models

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	redisclient "github.com/dudeandirt/lawncare/config/redis"
	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/shared_models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/argon2"
)

// Argon2 parameters
const (
	Memory      = 64 * 1024 // 64MB
	Iterations  = 3
	Parallelism = 4
	SaltLength  = 16
	KeyLength   = 64
)

// User Model
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// generateSalt generates a secure random salt
func generateSalt(size int) ([]byte, error) {
	salt := make([]byte, size)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPassword hashes a password using Argon2id
func HashPassword(password string) (string, error) {
	salt, err := generateSalt(SaltLength)
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)

	saltBase64 := base64.RawStdEncoding.EncodeToString(salt)
	hashBase64 := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("%s$%s", saltBase64, hashBase64), nil
}

// VerifyPassword verifies a password against a stored hash
func VerifyPassword(password, storedHash string) (bool, error) {
	parts := strings.Split(storedHash, "$")
	if len(parts) != 2 {
		logger.ErrorLogger.Error("invalid stored hash format")
		return false, errors.New("invalid stored hash format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		logger.ErrorLogger.Error(err)
		return false, err
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		logger.ErrorLogger.Error(err)
		return false, err
	}

	computedHash := argon2.IDKey([]byte(password), salt, Iterations, Memory, uint8(Parallelism), KeyLength)
	if subtle.ConstantTimeCompare(computedHash, expectedHash) == 1 {
		return true, nil
	}
	return false, nil
}

// IsEmailRegistered checks whether an account already exists for an email.
func IsEmailRegistered(ctx context.Context, db *pgxpool.Pool, email string) (bool, error) {
	var count int
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&count)
	if err != nil {
		logger.ErrorLogger.Errorf("failed to check email availability: %v", err)
		return false, fmt.Errorf("failed to check email availability: %w", err)
	}
	return count > 0, nil
}

// IsUsernameTaken checks whether a username is already in use.
func IsUsernameTaken(ctx context.Context, db *pgxpool.Pool, username string) (bool, error) {
	var count int
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&count)
	if err != nil {
		logger.ErrorLogger.Errorf("failed to check username availability: %v", err)
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return count > 0, nil
}

// CreateUser registers a new user.
func CreateUser(ctx context.Context, db *pgxpool.Pool, username, email, password, fullName, phone, address string) (*User, error) {
	logger.InfoLogger.Infof("CreateUser called for username %s", username)

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	userID, err := shared_models.GenerateUUIDv7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUIDv7: %w", err)
	}

	now := time.Now()
	query := `INSERT INTO users (id, username, email, password_hash, full_name, phone, address, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = db.Exec(ctx, query, userID, username, email, passwordHash, fullName, phone, address, now)
	if err != nil {
		logger.ErrorLogger.Errorf("failed to insert user %s: %v", username, err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &User{
		ID:           userID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Phone:        phone,
		Address:      address,
		CreatedAt:    now,
	}, nil
}

// LoginUser authenticates a user by email and issues access + refresh tokens.
func LoginUser(ctx context.Context, db *pgxpool.Pool, email, password string) (*User, string, string, error) {
	user, err := GetUserByEmail(ctx, db, email)
	if err != nil {
		logger.ErrorLogger.Errorf("Login failed for email %s: %v", email, err)
		return nil, "", "", errors.New("invalid credentials")
	}

	valid, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		logger.ErrorLogger.Errorf("Invalid password attempt for user %s", user.ID)
		return nil, "", "", errors.New("invalid credentials")
	}

	accessToken, err := shared_models.GenerateAccessToken(user.ID, shared_models.AccessTokenExpiry)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to generate access token for user %s: %v", user.ID, err)
		return nil, "", "", errors.New("failed to generate access token")
	}

	refreshToken, err := shared_models.GenerateRefreshToken(user.ID, shared_models.RefreshTokenExpiry)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to generate refresh token for user %s: %v", user.ID, err)
		return nil, "", "", errors.New("failed to generate refresh token")
	}

	err = redisclient.GetRedisClient().Set(ctx,
		shared_models.RefreshTokenPrefix+user.ID.String(),
		refreshToken, shared_models.RefreshTokenExpiry).Err()
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to store refresh token in Redis for user %s: %v", user.ID, err)
		return nil, "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	logger.InfoLogger.Infof("Tokens generated successfully for user %s", user.ID)
	return user, accessToken, refreshToken, nil
}

// LogoutUser drops the user's refresh token.
func LogoutUser(ctx context.Context, userID uuid.UUID) error {
	return redisclient.GetRedisClient().Del(ctx, shared_models.RefreshTokenPrefix+userID.String()).Err()
}

// GetUserByEmail retrieves a user by email
func GetUserByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*User, error) {
	return getUserBy(ctx, db, `email = $1`, email)
}

// GetUserByID retrieves a user by id
func GetUserByID(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*User, error) {
	return getUserBy(ctx, db, `id = $1`, id)
}

func getUserBy(ctx context.Context, db *pgxpool.Pool, where string, arg any) (*User, error) {
	var user User
	query := `SELECT id, username, email, password_hash, full_name, phone, address, created_at FROM users WHERE ` + where

	err := db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Phone,
		&user.Address,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserFields updates specific profile fields of a user.
func UpdateUserFields(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	var allowedUpdateFields = map[string]bool{
		"full_name": true,
		"phone":     true,
		"address":   true,
	}

	// Validate field names to prevent SQL injection
	for field := range updates {
		if !allowedUpdateFields[field] {
			return fmt.Errorf("field '%s' is not allowed for updates", field)
		}
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for field, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field, argCounter))
		args = append(args, value)
		argCounter++
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argCounter)
	args = append(args, userID)

	_, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user fields: %w", err)
	}
	return nil
}
