// Package config loads server configuration: a YAML file when present,
// overridden by environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AvailabilityConfig struct {
	BaseURL           string        `yaml:"baseUrl"`
	APIKey            string        `yaml:"apiKey"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// SeasonalNoticeConfig declares one suspended seasonal route.
type SeasonalNoticeConfig struct {
	FromStation string    `yaml:"fromStation"`
	ToStation   string    `yaml:"toStation"`
	StartDate   time.Time `yaml:"startDate"`
	EndDate     time.Time `yaml:"endDate"`
	Message     string    `yaml:"message"`
}

type EngineConfig struct {
	PointsAndCash      bool                   `yaml:"pointsAndCash"`
	LoyaltyProgramCode string                 `yaml:"loyaltyProgramCode"`
	SeasonalNotices    []SeasonalNoticeConfig `yaml:"seasonalNotices"`
}

type Config struct {
	Port         string             `yaml:"port"`
	Availability AvailabilityConfig `yaml:"availability"`
	Redis        RedisConfig        `yaml:"redis"`
	Database     DatabaseConfig     `yaml:"database"`
	Engine       EngineConfig       `yaml:"engine"`
}

func DefaultConfig() *Config {
	return &Config{
		Port: "8080",
		Availability: AvailabilityConfig{
			BaseURL:           "http://localhost:9090",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Redis: RedisConfig{
			TTL: 5 * time.Minute,
		},
		Engine: EngineConfig{
			PointsAndCash:      true,
			LoyaltyProgramCode: "NK",
		},
	}
}

// Load reads the config file named by FARE_CONFIG (default config.yaml when
// it exists) and applies environment overrides on top.
func Load() *Config {
	cfg := DefaultConfig()

	path := os.Getenv("FARE_CONFIG")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, cfg)
	}

	applyEnv(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("AVAILABILITY_BASE_URL"); v != "" {
		cfg.Availability.BaseURL = v
	}
	if v := os.Getenv("AVAILABILITY_API_KEY"); v != "" {
		cfg.Availability.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("POINTS_AND_CASH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Engine.PointsAndCash = b
		}
	}
	if v := os.Getenv("LOYALTY_PROGRAM_CODE"); v != "" {
		cfg.Engine.LoyaltyProgramCode = v
	}
}
