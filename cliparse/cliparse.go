package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	MaxJudgment  int
	PurgeClosed  bool
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Values already in the environment win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("majority", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	// Voting
	fs.IntVar(&cfg.MaxJudgment, "max-judgment", 0, "Highest accepted judgment (lowest is 1)")
	purge := fs.String("purge-closed", "", "Delete closed polls on start-up (true or false)")

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
		return Config{}, fmt.Errorf("invalid database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	if cfg.MaxJudgment == 0 {
		if maxStr := os.Getenv("MAX_JUDGMENT"); maxStr != "" {
			m, err := strconv.Atoi(maxStr)
			if err != nil {
				return Config{}, errors.New("invalid MAX_JUDGMENT env variable")
			}
			cfg.MaxJudgment = m
		} else {
			cfg.MaxJudgment = 5 // default
		}
	}
	if cfg.MaxJudgment < 1 {
		return Config{}, errors.New("max judgment must be at least 1")
	}

	if *purge == "" {
		*purge = os.Getenv("PURGE_CLOSED")
	}
	cfg.PurgeClosed = true
	if *purge != "" {
		b, err := strconv.ParseBool(*purge)
		if err != nil {
			return Config{}, errors.New("invalid purge-closed value")
		}
		cfg.PurgeClosed = b
	}

	return cfg, nil
}
