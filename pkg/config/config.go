package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	NocoDBBaseURL    string
	NocoDBAPIKey     string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// NocoDB table and view identifiers. Defaults match the production base;
	// overridable so a staging base with different ids can be targeted.
	UserTableID           string
	LocationTableID       string
	LocationViewID        string
	TreeInfoTableID       string
	PlantedTreesTableID   string
	PartnerSponsorTableID string

	// Link field ids on the Planted_Trees table.
	PlantedUserLinkID     string
	PlantedLocationLinkID string
	PlantedTreeInfoLinkID string
}

// ErrMissingJWTSecret is returned when JWT_SECRET is not configured.
// There is deliberately no built-in fallback secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("JWT_REFRESH_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		NocoDBBaseURL:    getEnv("NOCODB_API_URL", "http://localhost:8080"),
		NocoDBAPIKey:     os.Getenv("NOCODB_API_KEY"),
		JWTSecret:        secret,
		JWTAccessExpiry:  accessExpiry,
		JWTRefreshExpiry: refreshExpiry,

		UserTableID:           getEnv("NOCODB_USER_TABLE", "mpmsr2rvjfa3t22"),
		LocationTableID:       getEnv("NOCODB_LOCATION_TABLE", "mgnjjdbdzie74ur"),
		LocationViewID:        getEnv("NOCODB_LOCATION_VIEW", "vwavvg6u07favtq4"),
		TreeInfoTableID:       getEnv("NOCODB_TREE_INFO_TABLE", "msiujkp7wh01rvt"),
		PlantedTreesTableID:   getEnv("NOCODB_PLANTED_TREES_TABLE", "m7olw134y8mzyce"),
		PartnerSponsorTableID: getEnv("NOCODB_PARTNER_SPONSOR_TABLE", "m0syxl6tq6ufvgi"),

		PlantedUserLinkID:     getEnv("NOCODB_PLANTED_USER_LINK", "cjuyqc9lsmd6gtt"),
		PlantedLocationLinkID: getEnv("NOCODB_PLANTED_LOCATION_LINK", "c2tnwub1dvlniya"),
		PlantedTreeInfoLinkID: getEnv("NOCODB_PLANTED_TREE_INFO_LINK", "cowtx44w8kcieoy"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
