package config

import (
	"time"

	"github.com/maxviazov/football-sim/internal/logger"
	"github.com/maxviazov/football-sim/internal/match"
	"github.com/maxviazov/football-sim/internal/service"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Simulation SimulationConfig    `mapstructure:"simulation"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// SimulationConfig holds the defaults both binaries hand to the competition service.
// Seed 0 means a fresh seed per run.
type SimulationConfig struct {
	Seed             uint64        `mapstructure:"seed"`
	BaseRate         float64       `mapstructure:"base_rate" validate:"gt=0,lte=1"`
	InjuryChance     float64       `mapstructure:"injury_chance" validate:"gte=0,lte=1"`
	NoAssistChance   float64       `mapstructure:"no_assist_chance" validate:"gte=0,lte=1"`
	MaxStoppage      int           `mapstructure:"max_stoppage" validate:"gte=0,lte=30"`
	TeamsPerLeague   int           `mapstructure:"teams_per_league" validate:"gte=2,lte=40"`
	Qualifiers       int           `mapstructure:"qualifiers_per_league" validate:"gte=1"`
	MatchdayInterval time.Duration `mapstructure:"matchday_interval" validate:"gt=0"`
	CupName          string        `mapstructure:"cup_name" validate:"required"`
	TopScorers       int           `mapstructure:"top_scorers" validate:"gte=0"`
}

// EngineConfig is the match engine tuning.
func (s SimulationConfig) EngineConfig() match.Config {
	return match.Config{
		BaseRate:       s.BaseRate,
		InjuryChance:   match.Float(s.InjuryChance),
		NoAssistChance: match.Float(s.NoAssistChance),
		MaxStoppage:    match.Int(s.MaxStoppage),
	}
}

// ServiceSettings maps the simulation section onto the competition service defaults.
func (s SimulationConfig) ServiceSettings() service.Settings {
	return service.Settings{
		Engine:           s.EngineConfig(),
		MatchdayInterval: s.MatchdayInterval,
		TeamsPerLeague:   s.TeamsPerLeague,
		Qualifiers:       s.Qualifiers,
		CupName:          s.CupName,
	}
}

// ApplyEnv fills the logger environment from the app environment when it is not set explicitly.
func (c *Config) ApplyEnv() {
	if c.Logger.Env != "" {
		return
	}
	switch c.App.Env {
	case "test":
		c.Logger.Env = "dev"
	default:
		c.Logger.Env = c.App.Env
	}
}
