package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisAuthDB    int    `mapstructure:"REDIS_AUTH_DB"`
	RedisOutboxDB  int    `mapstructure:"REDIS_OUTBOX_DB"`

	// Stripe configuration.
	StripeKey      string `mapstructure:"STRIPE_KEY"`
	StripeCurrency string `mapstructure:"STRIPE_CURRENCY"`

	// Booking limits.
	MaxBookingQuantity int `mapstructure:"MAX_BOOKING_QUANTITY"`

	// SMTP configuration for confirmation emails.
	SMTPAddr string `mapstructure:"SMTP_ADDR"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`

	// First back-office account, created at startup when the email is set.
	AdminSeedEmail        string `mapstructure:"ADMIN_SEED_EMAIL"`
	AdminSeedName         string `mapstructure:"ADMIN_SEED_NAME"`
	AdminSeedPasswordHash string `mapstructure:"ADMIN_SEED_PASSWORD_HASH"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_OUTBOX_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "solecare")
	viper.SetDefault("STRIPE_CURRENCY", "gbp")
	viper.SetDefault("MAX_BOOKING_QUANTITY", 50)
	viper.SetDefault("SMTP_ADDR", "localhost:25")
	viper.SetDefault("SMTP_FROM", "bookings@solecare.co.uk")
	viper.SetDefault("ADMIN_SEED_EMAIL", "")
	viper.SetDefault("ADMIN_SEED_NAME", "Admin")
	viper.SetDefault("ADMIN_SEED_PASSWORD_HASH", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
