// Package config loads GluCoffee settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/ledger"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// PolicyConfig holds the tunable numbers of the calculator and the ledger.
type PolicyConfig struct {
	DailyLimitGrams      float64 `yaml:"daily_limit_grams"`
	ApproachingGrams     float64 `yaml:"approaching_grams"`
	StaleAfterDays       int     `yaml:"stale_after_days"`
	WeeklyWindowDays     int     `yaml:"weekly_window_days"`
	LargeMultiplier      float64 `yaml:"large_multiplier"`
	AdditiveGrams        float64 `yaml:"additive_grams"`
	MinQuantity          int     `yaml:"min_quantity"`
	MaxQuantity          int     `yaml:"max_quantity"`
	UnknownBeverage      string  `yaml:"unknown_beverage"`
	DefaultBeverageGrams float64 `yaml:"default_beverage_grams"`
}

// Config is the resolved application configuration.
type Config struct {
	DataDir       string       `yaml:"data_dir"`
	Store         string       `yaml:"store"`
	RedisAddr     string       `yaml:"redis_addr"`
	RedisPassword string       `yaml:"redis_password"`
	LogLevel      string       `yaml:"log_level"`
	LogMode       string       `yaml:"log_mode"`
	Policy        PolicyConfig `yaml:"policy"`
}

// DefaultConfig returns the built-in configuration. DataDir is ~/.glucoffee
// when the home directory can be resolved.
func DefaultConfig() *Config {
	dataDir := ".glucoffee"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".glucoffee")
	}
	p := sugar.DefaultPolicy()
	l := ledger.DefaultLimits()
	return &Config{
		DataDir:  dataDir,
		Store:    StoreFile,
		LogLevel: "warn",
		LogMode:  "dev",
		Policy: PolicyConfig{
			DailyLimitGrams:      l.DailyGrams,
			ApproachingGrams:     l.ApproachingGrams,
			StaleAfterDays:       domain.DefaultStaleAfterDays,
			WeeklyWindowDays:     7,
			LargeMultiplier:      p.LargeMultiplier,
			AdditiveGrams:        p.AdditiveGrams,
			MinQuantity:          p.MinQuantity,
			MaxQuantity:          p.MaxQuantity,
			UnknownBeverage:      p.UnknownBeverage,
			DefaultBeverageGrams: p.DefaultBeverageGrams,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
// Only non-zero values in the file replace defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.merge(file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	setString(&c.DataDir, o.DataDir)
	setString(&c.Store, o.Store)
	setString(&c.RedisAddr, o.RedisAddr)
	setString(&c.RedisPassword, o.RedisPassword)
	setString(&c.LogLevel, o.LogLevel)
	setString(&c.LogMode, o.LogMode)

	p, f := &c.Policy, o.Policy
	setFloat(&p.DailyLimitGrams, f.DailyLimitGrams)
	setFloat(&p.ApproachingGrams, f.ApproachingGrams)
	setInt(&p.StaleAfterDays, f.StaleAfterDays)
	setInt(&p.WeeklyWindowDays, f.WeeklyWindowDays)
	setFloat(&p.LargeMultiplier, f.LargeMultiplier)
	setFloat(&p.AdditiveGrams, f.AdditiveGrams)
	setInt(&p.MinQuantity, f.MinQuantity)
	setInt(&p.MaxQuantity, f.MaxQuantity)
	setString(&p.UnknownBeverage, f.UnknownBeverage)
	setFloat(&p.DefaultBeverageGrams, f.DefaultBeverageGrams)
}

// ApplyEnv overrides values from GLUCOFFEE_* environment variables.
func (c *Config) ApplyEnv() {
	setString(&c.DataDir, os.Getenv("GLUCOFFEE_DATA_DIR"))
	setString(&c.Store, os.Getenv("GLUCOFFEE_STORE"))
	setString(&c.RedisAddr, os.Getenv("GLUCOFFEE_REDIS_ADDR"))
	setString(&c.RedisPassword, os.Getenv("GLUCOFFEE_REDIS_PASSWORD"))
	setString(&c.LogLevel, os.Getenv("GLUCOFFEE_LOG_LEVEL"))
	setString(&c.LogMode, os.Getenv("GLUCOFFEE_LOG_MODE"))
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required when store is %q", StoreRedis)
		}
	default:
		return fmt.Errorf("store must be one of file, sqlite, redis (got %q)", c.Store)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}

	p := c.Policy
	if p.DailyLimitGrams <= 0 {
		return fmt.Errorf("policy.daily_limit_grams must be positive (got %v)", p.DailyLimitGrams)
	}
	if p.ApproachingGrams <= 0 || p.ApproachingGrams > p.DailyLimitGrams {
		return fmt.Errorf("policy.approaching_grams must be in (0, %v] (got %v)", p.DailyLimitGrams, p.ApproachingGrams)
	}
	if p.StaleAfterDays <= 0 {
		return fmt.Errorf("policy.stale_after_days must be positive (got %d)", p.StaleAfterDays)
	}
	if p.WeeklyWindowDays <= 0 {
		return fmt.Errorf("policy.weekly_window_days must be positive (got %d)", p.WeeklyWindowDays)
	}
	if p.LargeMultiplier < 1 {
		return fmt.Errorf("policy.large_multiplier must be at least 1 (got %v)", p.LargeMultiplier)
	}
	if p.AdditiveGrams < 0 {
		return fmt.Errorf("policy.additive_grams must not be negative (got %v)", p.AdditiveGrams)
	}
	if p.MinQuantity < 1 || p.MaxQuantity < p.MinQuantity {
		return fmt.Errorf("policy quantity bounds are invalid (min %d, max %d)", p.MinQuantity, p.MaxQuantity)
	}
	switch strings.ToLower(p.UnknownBeverage) {
	case sugar.UnknownReject, sugar.UnknownDefault:
	default:
		return fmt.Errorf("policy.unknown_beverage must be reject or default (got %q)", p.UnknownBeverage)
	}
	if p.DefaultBeverageGrams < 0 {
		return fmt.Errorf("policy.default_beverage_grams must not be negative (got %v)", p.DefaultBeverageGrams)
	}
	return nil
}

// SugarPolicy converts the policy section for the calculator.
func (c *Config) SugarPolicy() sugar.Policy {
	p := c.Policy
	return sugar.Policy{
		LargeMultiplier:      p.LargeMultiplier,
		AdditiveGrams:        p.AdditiveGrams,
		MinQuantity:          p.MinQuantity,
		MaxQuantity:          p.MaxQuantity,
		UnknownBeverage:      strings.ToLower(p.UnknownBeverage),
		DefaultBeverageGrams: p.DefaultBeverageGrams,
	}
}

// Limits converts the policy section for the ledger.
func (c *Config) Limits() ledger.Limits {
	return ledger.Limits{
		DailyGrams:       c.Policy.DailyLimitGrams,
		ApproachingGrams: c.Policy.ApproachingGrams,
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}
