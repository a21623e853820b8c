package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pearline_shop/pkg/config"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string
	DBDriver    string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	AccessTTL        time.Duration
	RefreshTTL       time.Duration

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	QuoteTaxRate      decimal.Decimal
	ClearCartOnSubmit bool

	SuperAdminEmail    string
	SuperAdminPassword string

	CSRFEnabled bool
}

// LoadDotEnv reads path into the process environment when the file exists.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("notice: %s not loaded: %v. Using system environment variables", path, err)
	}
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName: config.EnvDefault("SERVICE_NAME", "pearline"),
		ServerPort:  config.EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    config.EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: config.EnvDefault("DATABASE_URL", ""),
		DBDriver:    config.EnvDefault("DB_DRIVER", "pgx"),

		JWTAccessSecret:  []byte(config.EnvDefault("JWT_SECRET", "")),
		JWTRefreshSecret: []byte(config.EnvDefault("JWT_REFRESH_SECRET", "")),
		AccessTTL:        config.EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTTL:       config.EnvDurationDefault("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		KafkaBrokers: config.CSV(config.EnvDefault("KAFKA_BROKERS", "")),

		ESURL:      config.EnvDefault("ES_URL", ""),
		ESUser:     config.EnvDefault("ES_USER", ""),
		ESPassword: config.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    config.EnvDefault("ES_INDEX", "products"),

		QuoteTaxRate:      config.EnvDecimalDefault("QUOTE_TAX_RATE", decimal.Zero),
		ClearCartOnSubmit: config.EnvBoolDefault("QUOTE_CLEAR_CART_ON_SUBMIT", false),

		SuperAdminEmail:    config.EnvDefault("SUPERADMIN_EMAIL", ""),
		SuperAdminPassword: config.EnvDefault("SUPERADMIN_PASSWORD", ""),

		CSRFEnabled: config.EnvBoolDefault("CSRF_ENABLED", true),
	}

	var req config.Required
	req.NonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	req.NonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	req.NonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")
	if err := req.Err(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
