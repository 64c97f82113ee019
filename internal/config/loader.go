package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"app.name":             "football-sim",
	"app.version":          "0.1.0",
	"app.env":              "dev",
	"app.port":             8080,
	"app.cors_origins":     []string{"*"},
	"app.shutdown_timeout": 10 * time.Second,

	"logger.level":                "",
	"logger.format":               "",
	"logger.output_target":        "",
	"logger.time_format":          "",
	"logger.env":                  "",
	"logger.with_caller":          false,
	"logger.stacktrace":           false,
	"logger.debug_file":           "",
	"logger.service_name":         "football-sim",
	"logger.service_version":      "0.1.0",
	"logger.time_field":           "",
	"logger.stacktrace_min_level": "",

	"simulation.seed":                  0,
	"simulation.base_rate":             0.015,
	"simulation.injury_chance":         0.025,
	"simulation.no_assist_chance":      0.3,
	"simulation.max_stoppage":          10,
	"simulation.teams_per_league":      20,
	"simulation.qualifiers_per_league": 3,
	"simulation.matchday_interval":     7 * 24 * time.Hour,
	"simulation.cup_name":              "Champions League",
	"simulation.top_scorers":           10,
}

// Load reads path (YAML) on top of the defaults, then applies APP_* environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}
