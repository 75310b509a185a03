package auth

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAccessExpire  = "15m"
	defaultRefreshExpire = "7d"
)

// Config holds the resolved token secrets and lifetimes. It is built once
// at process start and injected into the Issuer and Verifier; nothing in
// the auth core reads the environment after that.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// ConfigFromEnv reads token config from environment variables. A missing
// JWT_SECRET is a fatal misconfiguration: the caller must not serve
// requests. The refresh-secret fallback to JWT_SECRET is resolved here,
// once, rather than per verification call.
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	refreshSecret := os.Getenv("JWT_REFRESH_TOKEN_SECRET")
	if refreshSecret == "" {
		refreshSecret = secret
	}

	accessTTL, err := parseExpiry(envDefault("JWT_ACCESS_TOKEN_EXPIRE", defaultAccessExpire))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_ACCESS_TOKEN_EXPIRE: %w", err)
	}
	refreshTTL, err := parseExpiry(envDefault("JWT_REFRESH_TOKEN_EXPIRE", defaultRefreshExpire))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_REFRESH_TOKEN_EXPIRE: %w", err)
	}

	return Config{
		AccessSecret:  secret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}, nil
}

// parseExpiry parses a token lifetime string. Go duration syntax is
// accepted plus a "d" day suffix ("7d"), which time.ParseDuration lacks.
func parseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty expiry")
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid expiry %q", s)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry %q", s)
	}
	return d, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
