package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables. A .env file
// in the working directory is loaded first if present; real environment
// variables win over values from the file.
//
// Recognized variables:
//
//	ADDRESS, DATABASE_DSN, SECRET_KEY,
//	ACCESS_TOKEN_VALIDITY_MINUTES, REFRESH_TOKEN_VALIDITY_MINUTES,
//	BCRYPT_COST, CORS_ALLOW_ORIGINS (comma-separated)
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		config.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("ACCESS_TOKEN_VALIDITY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.AccessTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("REFRESH_TOKEN_VALIDITY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			config.RefreshTokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = cost
		}
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		config.CORSAllowOrigins = strings.Split(v, ",")
	}
}
