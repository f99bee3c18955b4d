package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ginagrosso/biblioteca/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter format, e.g. "5-M"
	APIRateLimit       string

	OverdueSweepSchedule string // cron expression, empty disables the sweep
	MigrateOnStart       bool

	// Bootstrap librarian created by `serve` when no account with this username exists.
	BootstrapUsername string
	BootstrapPassword string

	Policy domain.Policy
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	defaults := domain.DefaultPolicy()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "biblioteca")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("API_RATE_LIMIT", "300-M")
	viper.SetDefault("OVERDUE_SWEEP_SCHEDULE", "0 6 * * *")
	viper.SetDefault("MIGRATE_ON_START", false)
	viper.SetDefault("BOOTSTRAP_LIBRARIAN_USERNAME", "")
	viper.SetDefault("BOOTSTRAP_LIBRARIAN_PASSWORD", "")

	viper.SetDefault("DAILY_LATE_RATE", defaults.DailyLateRate.StringFixed(2))
	viper.SetDefault("DEFAULT_LOAN_DAYS", defaults.DefaultLoanDays)
	viper.SetDefault("MAX_LOAN_DAYS", defaults.MaxLoanDays)
	viper.SetDefault("MAX_SIMULTANEOUS_LOANS", defaults.MaxSimultaneousLoans)
	viper.SetDefault("MIN_FINE_AMOUNT", defaults.MinFineAmount.StringFixed(2))
	viper.SetDefault("MAX_FINE_AMOUNT", defaults.MaxFineAmount.StringFixed(2))
	viper.SetDefault("LATE_FEE_ON_LOSS", defaults.LateFeeOnLoss)
	viper.SetDefault("LIBRARY_TIMEZONE", "UTC")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")
	cfg.OverdueSweepSchedule = strings.TrimSpace(viper.GetString("OVERDUE_SWEEP_SCHEDULE"))
	cfg.MigrateOnStart = viper.GetBool("MIGRATE_ON_START")
	cfg.BootstrapUsername = viper.GetString("BOOTSTRAP_LIBRARIAN_USERNAME")
	cfg.BootstrapPassword = viper.GetString("BOOTSTRAP_LIBRARIAN_PASSWORD")

	policy, err := loadPolicy()
	if err != nil {
		return nil, err
	}
	cfg.Policy = policy

	return cfg, nil
}

func loadPolicy() (domain.Policy, error) {
	policy := domain.Policy{
		DefaultLoanDays:      viper.GetInt("DEFAULT_LOAN_DAYS"),
		MaxLoanDays:          viper.GetInt("MAX_LOAN_DAYS"),
		MaxSimultaneousLoans: viper.GetInt("MAX_SIMULTANEOUS_LOANS"),
		LateFeeOnLoss:        viper.GetBool("LATE_FEE_ON_LOSS"),
	}

	var err error
	if policy.DailyLateRate, err = decimal.NewFromString(viper.GetString("DAILY_LATE_RATE")); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid DAILY_LATE_RATE: %w", err)
	}
	if policy.MinFineAmount, err = decimal.NewFromString(viper.GetString("MIN_FINE_AMOUNT")); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid MIN_FINE_AMOUNT: %w", err)
	}
	if policy.MaxFineAmount, err = decimal.NewFromString(viper.GetString("MAX_FINE_AMOUNT")); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid MAX_FINE_AMOUNT: %w", err)
	}

	tz := viper.GetString("LIBRARY_TIMEZONE")
	if policy.Location, err = time.LoadLocation(tz); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid LIBRARY_TIMEZONE %q: %w", tz, err)
	}

	if err := policy.Validate(); err != nil {
		return domain.Policy{}, err
	}
	return policy, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
