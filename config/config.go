package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"weatherapp/manager"
)

// APIKeyEnv overrides the embedded API key when set.
const APIKeyEnv = "OPENWEATHER_API_KEY"

type Config struct {
	OpenWeatherMap OpenWeatherMap `yaml:"openweathermap"`
	Defaults       Defaults       `yaml:"defaults"`
}

type OpenWeatherMap struct {
	APIKey   string `yaml:"apiKey"`
	BaseURL  string `yaml:"baseURL"`
	IconHost string `yaml:"iconHost"`
	// RateLimit is requests per minute, also usable as a burst; 0 disables pacing.
	RateLimit int `yaml:"rateLimit"`
}

type Defaults struct {
	Unit string `yaml:"unit"`
}

// Parse decodes raw YAML and validates it. The environment is not consulted.
func Parse(raw []byte) (Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load parses raw, then applies an optional .env file and APIKeyEnv.
func Load(raw []byte, envFiles ...string) (Config, error) {
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, err
	}

	if err = godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.OpenWeatherMap.APIKey = key
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.OpenWeatherMap.BaseURL == "" {
		return errors.New("config: openweathermap.baseURL is required")
	}
	if c.OpenWeatherMap.IconHost == "" {
		return errors.New("config: openweathermap.iconHost is required")
	}
	if c.OpenWeatherMap.RateLimit < 0 {
		return fmt.Errorf("config: openweathermap.rateLimit must not be negative, got %d", c.OpenWeatherMap.RateLimit)
	}
	if _, err := manager.ParseUnit(c.Defaults.Unit); err != nil {
		return fmt.Errorf("config: defaults.unit: %w", err)
	}

	return nil
}

func (c Config) DefaultUnit() manager.Unit {
	unit, _ := manager.ParseUnit(c.Defaults.Unit)
	return unit
}
