package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Points   PointsConfig
	Draw     DrawConfig
	Notify   NotifyConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
	// Mock switches the service onto in-memory repositories; used for local
	// runs without a database.
	Mock bool
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// PointsConfig holds points ledger configuration
type PointsConfig struct {
	LoginAward       int
	ApplicationAward int
	RetentionMonths  int
}

// DrawConfig holds draw scheduler configuration
type DrawConfig struct {
	SweepIntervalSeconds int
	GraceWindowSeconds   int
}

// NotifyConfig holds notification sink configuration
type NotifyConfig struct {
	WebhookURL  string
	AuthToken   string
	MockWebhook bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, environment variables take over
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"http://localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "clubhub")
	viper.SetDefault("MongoDB.Mock", false)
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Points.LoginAward", 1)
	viper.SetDefault("Points.ApplicationAward", 3)
	viper.SetDefault("Points.RetentionMonths", 24)
	viper.SetDefault("Draw.SweepIntervalSeconds", 60)
	viper.SetDefault("Draw.GraceWindowSeconds", 300) // 5 minutes past end
	viper.SetDefault("Notify.MockWebhook", true)
	viper.SetDefault("LogLevel", "info")
}
