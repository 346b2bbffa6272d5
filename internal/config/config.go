package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocationConfig configures the location-assist collaborator
type LocationConfig struct {
	Enabled       bool    `yaml:"enabled"`
	GazetteerPath string  `yaml:"gazetteer_path"`
	RadiusKm      float64 `yaml:"radius_km"`
}

// CalendarConfig configures the calendar-assist collaborator
type CalendarConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ICSPath     string `yaml:"ics_path"`
	DefaultDays int    `yaml:"default_days"`
}

// Config holds application configuration
type Config struct {
	DataPath  string         `yaml:"data_path"`
	SeedInbox bool           `yaml:"seed_inbox"`
	Debug     bool           `yaml:"debug"`
	Location  LocationConfig `yaml:"location"`
	Calendar  CalendarConfig `yaml:"calendar"`
}

func defaults() *Config {
	return &Config{
		DataPath:  "~/.taskdesk/taskdesk.db",
		SeedInbox: true,
		Location: LocationConfig{
			RadiusKm: 2.0,
		},
		Calendar: CalendarConfig{
			DefaultDays: 7,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// TASKDESK_* environment overrides, in that order. An empty path means
// "use the default location and skip it when absent"; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := defaults()

	explicit := path != ""
	if !explicit {
		path = "~/.taskdesk/taskdesk.yaml"
	}
	path = expandHome(path)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, uerr)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg)

	cfg.DataPath = expandHome(cfg.DataPath)
	cfg.Location.GazetteerPath = expandHome(cfg.Location.GazetteerPath)
	cfg.Calendar.ICSPath = expandHome(cfg.Calendar.ICSPath)

	if cfg.DataPath == "" {
		return nil, fmt.Errorf("data_path is required")
	}
	if cfg.Location.Enabled && cfg.Location.GazetteerPath == "" {
		return nil, fmt.Errorf("location.gazetteer_path is required when location is enabled")
	}
	if cfg.Calendar.Enabled && cfg.Calendar.ICSPath == "" {
		return nil, fmt.Errorf("calendar.ics_path is required when calendar is enabled")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DataPath = getEnv("TASKDESK_DATA_PATH", cfg.DataPath)
	cfg.SeedInbox = getEnvBool("TASKDESK_SEED_INBOX", cfg.SeedInbox)
	cfg.Debug = getEnvBool("TASKDESK_DEBUG", cfg.Debug)
	cfg.Location.Enabled = getEnvBool("TASKDESK_LOCATION_ENABLED", cfg.Location.Enabled)
	cfg.Location.GazetteerPath = getEnv("TASKDESK_GAZETTEER_PATH", cfg.Location.GazetteerPath)
	cfg.Location.RadiusKm = getEnvFloat("TASKDESK_LOCATION_RADIUS_KM", cfg.Location.RadiusKm)
	cfg.Calendar.Enabled = getEnvBool("TASKDESK_CALENDAR_ENABLED", cfg.Calendar.Enabled)
	cfg.Calendar.ICSPath = getEnv("TASKDESK_CALENDAR_ICS_PATH", cfg.Calendar.ICSPath)
	cfg.Calendar.DefaultDays = getEnvInt("TASKDESK_CALENDAR_DEFAULT_DAYS", cfg.Calendar.DefaultDays)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
