package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is loaded once at
// startup and passed into each component's constructor; nothing reads the
// environment at call time.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Gateway  GatewayConfig
	Funnel   FunnelConfig
	Email    EmailConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds the upsell token signing secret
type JWTConfig struct {
	Secret string
}

// GatewayConfig holds payment provider configuration: one wallet id and
// bearer token per supported method.
type GatewayConfig struct {
	BaseURL       string
	ClientID      string
	MpesaWalletID string
	MpesaToken    string
	EmolaWalletID string
	EmolaToken    string
}

// FunnelConfig holds the public base URL the upsell redirect links point at
type FunnelConfig struct {
	BaseURL string
}

// EmailConfig holds SMTP credentials for receipt delivery
type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	User     string
	Password string
}

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string]string{
	"Server.Port":           "PORT",
	"Server.AllowedOrigins": "ALLOWED_ORIGINS",
	"MongoDB.URI":           "MONGODB_URI",
	"MongoDB.Database":      "MONGODB_DATABASE",
	"JWT.Secret":            "JWT_SECRET",
	"Gateway.BaseURL":       "E2_BASE_URL",
	"Gateway.ClientID":      "CLIENT_ID",
	"Gateway.MpesaWalletID": "MPESA_WALLET_ID",
	"Gateway.MpesaToken":    "MPESA_TOKEN",
	"Gateway.EmolaWalletID": "EMOLA_WALLET_ID",
	"Gateway.EmolaToken":    "EMOLA_TOKEN",
	"Funnel.BaseURL":        "FUNNEL_BASE_URL",
	"Email.SMTPHost":        "SMTP_HOST",
	"Email.SMTPPort":        "SMTP_PORT",
	"Email.User":            "EMAIL_USER",
	"Email.Password":        "EMAIL_PASS",
	"LogLevel":              "LOG_LEVEL",
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "3000")
	viper.SetDefault("Server.AllowedOrigins", []string{"*"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "receitas-funnel")
	viper.SetDefault("Gateway.BaseURL", "https://mpesaemolatech.com")
	viper.SetDefault("Funnel.BaseURL", "https://seudominio.com")
	viper.SetDefault("Email.SMTPHost", "smtp.gmail.com")
	viper.SetDefault("Email.SMTPPort", 587)
	viper.SetDefault("LogLevel", "info")
}
