package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file when present.
// In deployed environments the variables come from the platform, so a
// missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on environment variables")
	}
}
