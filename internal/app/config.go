package app

import (
	"strings"

	"github.com/moodtunes/moodtunes-backend/internal/platform/envutil"
	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServiceName string
	Environment string
	Version     string

	HTTPAddr    string
	MetricsAddr string

	// StorageDriver selects the session store backend: postgres in
	// deployments, sqlite for local development.
	StorageDriver string

	// TuningPath optionally points at a yaml overlay for the dialogue
	// tuning defaults.
	TuningPath string

	RedisAddr string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		ServiceName:   envutil.String("SERVICE_NAME", "moodtunes"),
		Environment:   envutil.String("ENVIRONMENT", "development"),
		Version:       envutil.String("SERVICE_VERSION", "dev"),
		HTTPAddr:      envutil.String("HTTP_ADDR", ":8080"),
		MetricsAddr:   envutil.String("METRICS_ADDR", ":9090"),
		StorageDriver: strings.ToLower(envutil.String("STORAGE_DRIVER", DriverPostgres)),
		TuningPath:    envutil.String("DIALOGUE_CONFIG_PATH", ""),
		RedisAddr:     envutil.String("REDIS_ADDR", ""),
	}
	if cfg.StorageDriver != DriverPostgres && cfg.StorageDriver != DriverSQLite {
		log.Warn("Unknown STORAGE_DRIVER, falling back to postgres", "driver", cfg.StorageDriver)
		cfg.StorageDriver = DriverPostgres
	}
	return cfg
}
