package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first if present; real environment variables
// win over .env values (godotenv.Load never overrides).
//
// Supported variables:
//
//	VAULTKEEP_ADDR            HTTP bind address
//	DATABASE_DSN              PostgreSQL DSN
//	JWT_SECRET                token signing key
//	JWT_ISSUER / JWT_AUDIENCE token claims
//	TOKEN_VALIDITY_MINUTES    token lifetime
//	ENCRYPTION_KEY            32-byte content key
//	CORS_ORIGINS              comma-separated origins
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("VAULTKEEP_ADDR"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		config.JWTIssuer = v
	}
	if v := os.Getenv("JWT_AUDIENCE"); v != "" {
		config.JWTAudience = v
	}
	if v := os.Getenv("TOKEN_VALIDITY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			config.TokenValidityDuration = time.Duration(minutes) * time.Minute
		}
	}
	if v := os.Getenv("ENCRYPTION_KEY"); v != "" {
		config.EncryptionKey = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		config.CORSAllowedOrigins = splitOrigins(v)
	}
}
