package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"` // empty uses the embedded set
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	// JWT is optional. With an empty secret the API runs without the
	// bearer-token guard.
	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Simulation struct {
		CourseWorkers    int     `yaml:"course_workers" env:"SIM_COURSE_WORKERS"`
		OptimizerWorkers int     `yaml:"optimizer_workers" env:"SIM_OPTIMIZER_WORKERS"`
		BatchWorkers     int     `yaml:"batch_workers" env:"SIM_BATCH_WORKERS"`
		MaxBatchSize     int     `yaml:"max_batch_size" env:"SIM_MAX_BATCH_SIZE"`
		PopulationSize   int     `yaml:"population_size" env:"SIM_POPULATION_SIZE"`
		MaxGenerations   int     `yaml:"max_generations" env:"SIM_MAX_GENERATIONS"`
		Seed             int64   `yaml:"seed" env:"SIM_SEED"`
		Tolerance        float64 `yaml:"tolerance" env:"SIM_TOLERANCE"`
	} `yaml:"simulation"`

	RateLimit struct {
		OptimizeRPS   float64 `yaml:"optimize_rps" env:"RATE_LIMIT_OPTIMIZE_RPS"`
		OptimizeBurst int     `yaml:"optimize_burst" env:"RATE_LIMIT_OPTIMIZE_BURST"`
	} `yaml:"rate_limit"`

	Retention struct {
		PruneSchedule string `yaml:"prune_schedule" env:"RETENTION_PRUNE_SCHEDULE"`
		MaxAge        string `yaml:"max_age" env:"RETENTION_MAX_AGE"`
	} `yaml:"retention"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "60s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "academictwin"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "academictwin"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Simulation.CourseWorkers = 1
	config.Simulation.OptimizerWorkers = 4
	config.Simulation.BatchWorkers = 4
	config.Simulation.MaxBatchSize = 10
	config.Simulation.PopulationSize = 10
	config.Simulation.MaxGenerations = 50
	config.Simulation.Seed = 42
	config.Simulation.Tolerance = 0.01

	config.RateLimit.OptimizeRPS = 1
	config.RateLimit.OptimizeBurst = 3

	config.Retention.PruneSchedule = "@daily"
	config.Retention.MaxAge = "720h"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	durations := map[string]string{
		"server read timeout":          config.Server.ReadTimeout,
		"server write timeout":         config.Server.WriteTimeout,
		"database connection lifetime": config.Database.ConnMaxLifetime,
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"retention max age":            config.Retention.MaxAge,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Simulation.MaxBatchSize < 1 {
		return fmt.Errorf("simulation max batch size must be positive")
	}
	if config.Simulation.Tolerance < 0 {
		return fmt.Errorf("simulation tolerance cannot be negative")
	}
	if config.RateLimit.OptimizeRPS < 0 || config.RateLimit.OptimizeBurst < 0 {
		return fmt.Errorf("rate limit values cannot be negative")
	}

	if config.Retention.PruneSchedule != "" {
		if _, err := cron.ParseStandard(config.Retention.PruneSchedule); err != nil {
			return fmt.Errorf("invalid retention prune schedule: %w", err)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AuthEnabled reports whether the bearer-token guard should be installed.
func (c *Config) AuthEnabled() bool {
	return c.JWT.Secret != ""
}

// MustDuration parses a duration that validateConfig has already checked.
func MustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(GetEnv(key, "")) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
