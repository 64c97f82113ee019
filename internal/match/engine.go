package match

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/rng"
)

// Probability bounds for a single side scoring in a single minute.
const (
	MinScoringProbability = 0.01
	MaxScoringProbability = 0.10
)

const (
	halfLength = 45
	fullTime   = 90
)

// ErrNoEligiblePlayer is returned when every player of a side is injured (or the roster is empty).
var ErrNoEligiblePlayer = errors.New("no eligible player")

// Config tunes the engine. A zero BaseRate and nil optional fields fall back to DefaultConfig;
// an explicit 0 chance or stoppage is kept.
type Config struct {
	BaseRate       float64  `mapstructure:"base_rate" json:"base_rate,omitempty" validate:"gte=0,lte=1"`
	InjuryChance   *float64 `mapstructure:"injury_chance" json:"injury_chance,omitempty" validate:"omitempty,gte=0,lte=1"`
	NoAssistChance *float64 `mapstructure:"no_assist_chance" json:"no_assist_chance,omitempty" validate:"omitempty,gte=0,lte=1"`
	MaxStoppage    *int     `mapstructure:"max_stoppage" json:"max_stoppage,omitempty" validate:"omitempty,gte=0,lte=30"`
}

// DefaultConfig returns the tuning used by the console driver.
func DefaultConfig() Config {
	return Config{BaseRate: 0.015, InjuryChance: Float(0.025), NoAssistChance: Float(0.3), MaxStoppage: Int(10)}
}

// Float and Int build the optional Config fields.
func Float(v float64) *float64 { return &v }
func Int(v int) *int { return &v }

func (c *Config) setDefaults() {
	d := DefaultConfig()
	if c.BaseRate == 0 {
		c.BaseRate = d.BaseRate
	}
	if c.InjuryChance == nil {
		c.InjuryChance = d.InjuryChance
	}
	if c.NoAssistChance == nil {
		c.NoAssistChance = d.NoAssistChance
	}
	if c.MaxStoppage == nil {
		c.MaxStoppage = d.MaxStoppage
	}
}

// tuning is the resolved Config the engine reads while simulating.
type tuning struct {
	baseRate       float64
	injuryChance   float64
	noAssistChance float64
	maxStoppage    int
}

var (
	scorerWeights = map[model.Position]float64{
		model.PositionForward:    2.0,
		model.PositionMidfielder: 1.25,
		model.PositionDefender:   0.75,
		model.PositionGoalkeeper: 0.01,
	}
	assistWeights = map[model.Position]float64{
		model.PositionMidfielder: 2.0,
		model.PositionForward:    1.25,
		model.PositionDefender:   0.75,
		model.PositionGoalkeeper: 0.01,
	}
)

// Engine plays matches. It is not safe for concurrent use: the random source and
// the team rosters it mutates belong to one competition at a time.
type Engine struct {
	cfg tuning
	src rng.Source
	log zerolog.Logger
}

// NewEngine validates cfg and wires the engine to src.
func NewEngine(cfg Config, src rng.Source, logger zerolog.Logger) (*Engine, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: engine needs a random source", model.ErrInvalidArgument)
	}
	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: engine config: %v", model.ErrInvalidArgument, err)
	}
	l := logger.With().Str("module", "match").Str("component", "engine").Logger()
	t := tuning{
		baseRate:       cfg.BaseRate,
		injuryChance:   *cfg.InjuryChance,
		noAssistChance: *cfg.NoAssistChance,
		maxStoppage:    *cfg.MaxStoppage,
	}
	return &Engine{cfg: t, src: src, log: l}, nil
}

// Config returns the effective tuning.
func (e *Engine) Config() Config {
	return Config{
		BaseRate:       e.cfg.baseRate,
		InjuryChance:   Float(e.cfg.injuryChance),
		NoAssistChance: Float(e.cfg.noAssistChance),
		MaxStoppage:    Int(e.cfg.maxStoppage),
	}
}

// Simulate plays m to full time: both halves with stoppage, the post-match injury roll and Finish.
// Team records are left to the caller (ApplyToRecords) so competitions decide when to book results.
func (e *Engine) Simulate(m *Match) error {
	if m == nil {
		return fmt.Errorf("%w: nil match", model.ErrInvalidArgument)
	}
	if m.completed {
		return fmt.Errorf("%w: match %s is already completed", model.ErrInvalidState, m.Label)
	}

	firstStoppage := rng.IntRange(e.src, 0, e.cfg.maxStoppage)
	e.playMinutes(m, 0, halfLength+firstStoppage)
	secondStoppage := rng.IntRange(e.src, 0, e.cfg.maxStoppage)
	e.playMinutes(m, halfLength, fullTime+secondStoppage)

	m.injuries = e.SimulateInjuries(m)
	if err := m.Finish(); err != nil {
		return err
	}

	e.log.Debug().
		Str("match", m.Label).
		Str("home", m.home.Name).
		Str("away", m.away.Name).
		Int("home_score", m.homeScore).
		Int("away_score", m.awayScore).
		Int("injuries", len(m.injuries)).
		Msg("match simulated")
	return nil
}

// playMinutes rolls both sides for every minute in [from, to].
func (e *Engine) playMinutes(m *Match, from, to int) {
	homeP := e.ScoringProbability(m.home, m.away)
	awayP := e.ScoringProbability(m.away, m.home)
	for minute := from; minute <= to; minute++ {
		if rng.Chance(e.src, homeP) {
			e.scoreFor(m, SideHome, minute)
		}
		if rng.Chance(e.src, awayP) {
			e.scoreFor(m, SideAway, minute)
		}
	}
}

func (e *Engine) scoreFor(m *Match, side Side, minute int) {
	team := m.Team(side)
	scorer, err := e.DetermineScorer(team)
	if err != nil {
		e.log.Warn().Err(err).Str("team", team.Name).Int("minute", minute).Msg("goal attempt dropped")
		return
	}
	assister := e.DetermineAssist(team, scorer)
	if err := m.RecordGoal(scorer, assister, side, minute); err != nil {
		e.log.Error().Err(err).Str("team", team.Name).Int("minute", minute).Msg("record goal failed")
	}
}

// ScoringProbability is the per-minute chance that team scores against opp:
// base rate scaled by the rating ratio, clamped to [MinScoringProbability, MaxScoringProbability].
func (e *Engine) ScoringProbability(team, opp *model.Team) float64 {
	tr, or := team.Rating(), opp.Rating()
	switch {
	case tr <= 0:
		return MinScoringProbability
	case or <= 0:
		return MaxScoringProbability
	}
	return clamp(e.cfg.baseRate*tr/or, MinScoringProbability, MaxScoringProbability)
}

// DetermineScorer draws a non-injured player weighted by rating and position.
func (e *Engine) DetermineScorer(team *model.Team) (*model.Player, error) {
	if team == nil {
		return nil, fmt.Errorf("%w: nil team", model.ErrInvalidArgument)
	}
	if p := e.weightedPick(team.Players(), scorerWeights, nil); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %s has nobody fit to score", ErrNoEligiblePlayer, team.Name)
}

// DetermineAssist returns the teammate credited with the assist, or nil for an unassisted goal.
func (e *Engine) DetermineAssist(team *model.Team, scorer *model.Player) *model.Player {
	if team == nil || rng.Chance(e.src, e.cfg.noAssistChance) {
		return nil
	}
	return e.weightedPick(team.Players(), assistWeights, scorer)
}

// weightedPick walks cumulative weights and returns the first player whose running total reaches the draw.
// Injured players and exclude carry zero weight and can never be picked.
func (e *Engine) weightedPick(players []*model.Player, factors map[model.Position]float64, exclude *model.Player) *model.Player {
	weights := make([]float64, len(players))
	total := 0.0
	for i, p := range players {
		if p.Injured || p == exclude {
			continue
		}
		weights[i] = float64(p.Rating) * factors[p.Position]
		total += weights[i]
	}
	if total <= 0 {
		return nil
	}

	draw := e.src.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w == 0 {
			continue
		}
		cumulative += w
		if draw <= cumulative {
			return players[i]
		}
	}
	// floating point left the draw past the last bucket
	for i, p := range players {
		if weights[i] > 0 {
			return p
		}
	}
	return nil
}

// SimulateInjuries rolls once for every fit player of both sides and returns the newly injured.
func (e *Engine) SimulateInjuries(m *Match) []*model.Player {
	if m == nil {
		return nil
	}
	var injured []*model.Player
	for _, team := range []*model.Team{m.home, m.away} {
		for _, p := range team.Players() {
			if p.Injured || !rng.Chance(e.src, e.cfg.injuryChance) {
				continue
			}
			p.SetInjured(true)
			injured = append(injured, p)
			e.log.Info().Str("team", team.Name).Str("player", p.Name).Str("match", m.Label).Msg("player injured")
		}
	}
	return injured
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
