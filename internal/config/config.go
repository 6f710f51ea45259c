package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Caixa    CaixaConfig
	Cache    CacheConfig
	JWT      JWTConfig
	Admin    AdminConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB configuration.
type MongoDBConfig struct {
	URI      string
	Database string
}

// CaixaConfig holds Loterias Caixa API client configuration.
type CaixaConfig struct {
	BaseURL        string
	TimeoutSeconds int
	MockAPI        bool
}

// CacheConfig holds the layout of the on-disk CSV caches.
type CacheConfig struct {
	Dir           string
	WinnersFile   string
	FrequencyFile string
}

// JWTConfig holds JWT signing configuration.
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// AdminConfig holds the credentials allowed to trigger history refreshes.
type AdminConfig struct {
	Email        string
	PasswordHash string
}

// Load loads configuration from a config file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, environment variables take over.
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

func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "megasena")
	viper.SetDefault("Caixa.BaseURL", "https://loteriascaixa-api.herokuapp.com/api/megasena")
	viper.SetDefault("Caixa.TimeoutSeconds", 30)
	viper.SetDefault("Caixa.MockAPI", false)
	viper.SetDefault("Cache.Dir", "./data")
	viper.SetDefault("Cache.WinnersFile", "megasena_winner_records.csv")
	viper.SetDefault("Cache.FrequencyFile", "megasena_number_frequency.csv")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
}
