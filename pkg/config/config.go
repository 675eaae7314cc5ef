package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

var Empty = new(Config)

type Config struct {
	AppEnv        string `envconfig:"APP_ENV" default:"local"`
	Port          int    `envconfig:"PORT" default:"8080"`
	SentryDSN     string `envconfig:"SENTRY_DSN"`
	AllowOrigins  string `envconfig:"ALLOW_ORIGINS"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"mongodb"`

	MongoDB struct {
		ConnectionString string `envconfig:"MONGODB_CONNECTION_STRING" default:"mongodb://localhost:27017"`
		DatabaseName     string `envconfig:"MONGODB_DATABASE_NAME" default:"movie_track_db"`
		Collection       string `envconfig:"MONGODB_COLLECTION" default:"movies"`
	}
	Auth struct {
		Username string `envconfig:"BASIC_AUTH_USERNAME"`
		Password string `envconfig:"BASIC_AUTH_PASSWORD"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.StorageDriver {
	case StorageMongoDB, StorageMemory:
	default:
		return nil, fmt.Errorf("load config error: unknown storage driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}
