package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StorageDriver  string
	BoltPath       string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool

	JWTSecret       string
	AuthEnabled     bool
	DefaultUserID   string
	FrontendBaseURL string
	RateLimit       string

	PersistenceTimeout time.Duration
	LowStockThreshold  int
	COACacheTTL        time.Duration
	COASeedFile        string
	PostingAccounts    domain.PostingAccounts
}

// postingAccountKeys maps each posting role to its override variable.
var postingAccountKeys = map[string]func(*domain.PostingAccounts) *string{
	"POSTING_CASH_ACCOUNT":              func(p *domain.PostingAccounts) *string { return &p.Cash },
	"POSTING_BANK_ACCOUNT":              func(p *domain.PostingAccounts) *string { return &p.Bank },
	"POSTING_QRIS_ACCOUNT":              func(p *domain.PostingAccounts) *string { return &p.QRIS },
	"POSTING_RECEIVABLE_ACCOUNT":        func(p *domain.PostingAccounts) *string { return &p.Receivable },
	"POSTING_INVENTORY_ACCOUNT":         func(p *domain.PostingAccounts) *string { return &p.Inventory },
	"POSTING_SALES_REVENUE_ACCOUNT":     func(p *domain.PostingAccounts) *string { return &p.SalesRevenue },
	"POSTING_OTHER_REVENUE_ACCOUNT":     func(p *domain.PostingAccounts) *string { return &p.OtherRevenue },
	"POSTING_SALES_DISCOUNT_ACCOUNT":    func(p *domain.PostingAccounts) *string { return &p.SalesDiscount },
	"POSTING_COGS_ACCOUNT":              func(p *domain.PostingAccounts) *string { return &p.COGS },
	"POSTING_SALARY_EXPENSE_ACCOUNT":    func(p *domain.PostingAccounts) *string { return &p.SalaryExpense },
	"POSTING_OPERATING_EXPENSE_ACCOUNT": func(p *domain.PostingAccounts) *string { return &p.OperatingExpense },
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("BOLT_PATH", "pos_ledger.db")
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("DEFAULT_USER_ID", "pos-terminal")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("PERSISTENCE_TIMEOUT", "10s")
	v.SetDefault("LOW_STOCK_THRESHOLD", domain.DefaultLowStockThreshold)
	v.SetDefault("COA_CACHE_TTL", "5m")
	v.SetDefault("COA_SEED_FILE", "")

	defaults := domain.DefaultPostingAccounts()
	for key, field := range postingAccountKeys {
		v.SetDefault(key, *field(&defaults))
	}

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:       v.GetString("PGSQL_URL"),
		StorageDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		BoltPath:          v.GetString("BOLT_PATH"),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AuthEnabled:       v.GetBool("AUTH_ENABLED"),
		DefaultUserID:     v.GetString("DEFAULT_USER_ID"),
		FrontendBaseURL:   v.GetString("FRONTEND_BASE_URL"),
		RateLimit:         v.GetString("RATE_LIMIT"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		COASeedFile:       v.GetString("COA_SEED_FILE"),
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageBolt:
		if cfg.BoltPath == "" {
			return nil, fmt.Errorf("BOLT_PATH must be set when STORAGE_DRIVER is %s", StorageBolt)
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q, expected %s or %s", cfg.StorageDriver, StoragePostgres, StorageBolt)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		if cfg.IsProduction && cfg.AuthEnabled {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	var err error
	if cfg.PersistenceTimeout, err = parseDuration(v, "PERSISTENCE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.COACacheTTL, err = parseDuration(v, "COA_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	if cfg.LowStockThreshold < 0 {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative, got %d", cfg.LowStockThreshold)
	}

	for key, field := range postingAccountKeys {
		code := strings.TrimSpace(v.GetString(key))
		if code == "" {
			return nil, fmt.Errorf("%s must not be empty", key)
		}
		*field(&cfg.PostingAccounts) = code
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}
