package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Payment  PaymentConfig
	Auth     AuthConfig
	Booking  BookingConfig
	Fees     FeesConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PaymentConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type BookingConfig struct {
	HoldTTL          time.Duration
	TxTimeout        time.Duration
	MaxRetryAttempts int
}

// FeesConfig holds the flat checkout surcharges. Flat amounts in the
// marketplace currency, not percentages.
type FeesConfig struct {
	Taxes       float64
	PlatformFee float64
	Insurance   float64
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "karkhana")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "karkhana")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PAYMENT_BASE_URL", "https://gateway.example.com")
	viper.SetDefault("PAYMENT_API_KEY", "")
	viper.SetDefault("PAYMENT_TIMEOUT", "30s")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("BOOKING_HOLD_TTL", "10m")
	viper.SetDefault("BOOKING_TX_TIMEOUT", "5s")
	viper.SetDefault("BOOKING_MAX_RETRY_ATTEMPTS", 3)
	viper.SetDefault("FEE_TAXES", 90.0)
	viper.SetDefault("FEE_PLATFORM", 5.0)
	viper.SetDefault("FEE_INSURANCE", 50.0)
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	paymentTimeout, err := time.ParseDuration(viper.GetString("PAYMENT_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	tokenTTL, err := time.ParseDuration(viper.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, err
	}

	holdTTL, err := time.ParseDuration(viper.GetString("BOOKING_HOLD_TTL"))
	if err != nil {
		return nil, err
	}

	txTimeout, err := time.ParseDuration(viper.GetString("BOOKING_TX_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Payment: PaymentConfig{
			BaseURL: viper.GetString("PAYMENT_BASE_URL"),
			APIKey:  viper.GetString("PAYMENT_API_KEY"),
			Timeout: paymentTimeout,
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Booking: BookingConfig{
			HoldTTL:          holdTTL,
			TxTimeout:        txTimeout,
			MaxRetryAttempts: viper.GetInt("BOOKING_MAX_RETRY_ATTEMPTS"),
		},
		Fees: FeesConfig{
			Taxes:       viper.GetFloat64("FEE_TAXES"),
			PlatformFee: viper.GetFloat64("FEE_PLATFORM"),
			Insurance:   viper.GetFloat64("FEE_INSURANCE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
