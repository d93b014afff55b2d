package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/maikadev/maika-api/internal/domain"
)

// Config groups the application configuration, read via Viper from the
// environment (an optional .env file is loaded by main beforehand).
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	PayPal PayPalConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string
}

// MongoConfig connection settings for the document store.
type MongoConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// URI returns the mongodb connection string (credentials are supplied
// separately via the driver's auth options).
func (c MongoConfig) URI() string {
	return fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
}

// JWTConfig token signing settings. Rotating the secret invalidates every
// previously issued token.
type JWTConfig struct {
	Secret   string
	TTLHours int
}

// HTTPConfig listen settings for the API server.
type HTTPConfig struct {
	Port string
}

// PayPalConfig credentials for the payment gateway.
type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
}

// Load reads configuration from the environment. Missing required variables
// make startup fail with domain.ErrConfig.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Mongo: MongoConfig{
			Host:     v.GetString("MONGODB_HOST"),
			Port:     getInt(v, "MONGODB_PORT", 27017),
			User:     v.GetString("MONGODB_USER"),
			Password: v.GetString("MONGODB_PASS"),
			Database: getString(v, "MONGODB_DATABASE", "maika"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			TTLHours: getInt(v, "JWT_TTL_HOURS", 24),
		},
		HTTP: HTTPConfig{
			Port: getString(v, "API_PORT", "8080"),
		},
		PayPal: PayPalConfig{
			ClientID:     v.GetString("PAYPAL_CLIENT_ID"),
			ClientSecret: v.GetString("PAYPAL_CLIENT_SECRET"),
			BaseURL:      getString(v, "PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Mongo.Host == "" {
		missing = append(missing, "MONGODB_HOST")
	}
	if c.Mongo.User == "" {
		missing = append(missing, "MONGODB_USER")
	}
	if c.Mongo.Password == "" {
		missing = append(missing, "MONGODB_PASS")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrConfig, strings.Join(missing, ", "))
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) && v.GetString(key) != "" {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) && v.GetInt(key) != 0 {
		return v.GetInt(key)
	}
	return def
}
