// Package config loads server configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the server needs at startup. JWTSecret and
// DatabaseDSN have no defaults and are validated in main.
type Config struct {
	Addr        string
	DatabaseDSN string
	JWTSecret   string
	AccessTTL   time.Duration
	BcryptCost  int
}

// Load reads configuration from environment variables, applying defaults
// where a value is optional.
func Load() Config {
	addr := ":8080"
	if v := os.Getenv("ADDR"); v != "" {
		addr = v
	}

	ttl := 24 * time.Hour
	if v := os.Getenv("ACCESS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}

	cost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if c, err := strconv.Atoi(v); err == nil {
			cost = c
		}
	}

	return Config{
		Addr:        addr,
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AccessTTL:   ttl,
		BcryptCost:  cost,
	}
}
