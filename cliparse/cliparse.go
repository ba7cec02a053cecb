package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

const defaultMaxPhotoBytes = 10 << 20 // 10 MiB

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	AdminKeySalt  string
	GeocodeURL    string
	SeedDir       string
	MaxPhotoBytes int64
}

// ParseFlags validates flags and fills in defaults from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("firecheck", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Template admin key salt (prefer env)")

	// Optional collaborators
	fs.StringVar(&cfg.GeocodeURL, "geocode-url", "", "Reverse-geocoding endpoint (optional)")
	fs.StringVar(&cfg.SeedDir, "seed", "", "Directory of YAML form templates to seed at startup")
	fs.Int64Var(&cfg.MaxPhotoBytes, "max-photo", 0, "Maximum accepted photo size in bytes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = os.Getenv("GEOCODE_URL")
	}
	if cfg.SeedDir == "" {
		cfg.SeedDir = os.Getenv("TEMPLATE_SEED_DIR")
	}

	if cfg.MaxPhotoBytes == 0 {
		if sizeStr := os.Getenv("MAX_PHOTO_BYTES"); sizeStr != "" {
			size, err := strconv.ParseInt(sizeStr, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid MAX_PHOTO_BYTES env variable")
			}
			cfg.MaxPhotoBytes = size
		} else {
			cfg.MaxPhotoBytes = defaultMaxPhotoBytes
		}
	}

	return cfg, nil
}
