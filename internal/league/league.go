// Package league runs a double round-robin season and keeps its table.
package league

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/maxviazov/football-sim/internal/match"
	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/schedule"
)

// DefaultMaxTeams bounds a league when the caller passes no limit.
const DefaultMaxTeams = 20

// MatchdayHook observes the table after every simulated matchday.
type MatchdayHook func(day schedule.Matchday, table []model.StandingRow)

// Option customises a League.
type Option func(*League)

// WithClock sets the clock used to date the first matchday.
func WithClock(c clockwork.Clock) Option { return func(l *League) { l.clock = c } }

// WithLogger attaches a logger; the league derives its own child logger from it.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *League) {
		l.log = logger.With().Str("module", "league").Str("league", l.Name).Logger()
	}
}

// WithMatchdayInterval sets the gap between matchday kickoffs.
func WithMatchdayInterval(d time.Duration) Option { return func(l *League) { l.interval = d } }

// WithMatchdayHook registers fn to be called after each matchday.
func WithMatchdayHook(fn MatchdayHook) Option { return func(l *League) { l.hook = fn } }

// League owns the team set, the schedule and the table. Teams are referenced, not copied.
type League struct {
	Name   string
	Region string

	maxTeams int
	teams    []*model.Team
	engine   *match.Engine
	clock    clockwork.Clock
	interval time.Duration
	hook     MatchdayHook
	log      zerolog.Logger

	days   []schedule.Matchday
	cursor int
	table  []int
}

// New creates an empty league. maxTeams <= 0 means DefaultMaxTeams.
func New(name, region string, maxTeams int, engine *match.Engine, opts ...Option) (*League, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: league name is required", model.ErrInvalidArgument)
	}
	if engine == nil {
		return nil, fmt.Errorf("%w: league needs a match engine", model.ErrInvalidArgument)
	}
	if maxTeams <= 0 {
		maxTeams = DefaultMaxTeams
	}
	l := &League{
		Name:     name,
		Region:   strings.TrimSpace(region),
		maxTeams: maxTeams,
		engine:   engine,
		clock:    clockwork.NewRealClock(),
		interval: schedule.DefaultInterval,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// AddTeam enrolls t and invalidates any existing schedule.
func (l *League) AddTeam(t *model.Team) error {
	switch {
	case t == nil:
		return fmt.Errorf("%w: nil team", model.ErrInvalidArgument)
	case l.InProgress():
		return fmt.Errorf("%w: %s season is in progress", model.ErrInvalidState, l.Name)
	case len(l.teams) >= l.maxTeams:
		return fmt.Errorf("%w: %s is full (%d teams)", model.ErrCapacity, l.Name, l.maxTeams)
	}
	if _, err := l.TeamByName(t.Name); err == nil {
		return fmt.Errorf("%w: %s already has a team called %s", model.ErrAlreadyExists, l.Name, t.Name)
	}
	l.teams = append(l.teams, t)
	l.invalidate()
	return nil
}

// RemoveTeam drops the team called name and invalidates any existing schedule.
func (l *League) RemoveTeam(name string) error {
	if l.InProgress() {
		return fmt.Errorf("%w: %s season is in progress", model.ErrInvalidState, l.Name)
	}
	i := l.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: no team %s in %s", model.ErrNotFound, name, l.Name)
	}
	l.teams = append(l.teams[:i], l.teams[i+1:]...)
	l.invalidate()
	return nil
}

// TeamByName looks a team up by its exact name.
func (l *League) TeamByName(name string) (*model.Team, error) {
	if i := l.indexOf(name); i >= 0 {
		return l.teams[i], nil
	}
	return nil, fmt.Errorf("%w: no team %s in %s", model.ErrNotFound, name, l.Name)
}

// Teams returns the enrolled teams in insertion order.
func (l *League) Teams() []*model.Team {
	out := make([]*model.Team, len(l.teams))
	copy(out, l.teams)
	return out
}

func (l *League) MaxTeams() int { return l.maxTeams }

// Scheduled reports whether a usable schedule exists.
func (l *League) Scheduled() bool { return l.days != nil }

// InProgress is true between the first and the last simulated matchday.
func (l *League) InProgress() bool { return l.cursor > 0 && l.cursor < len(l.days) }

// Complete is true once every matchday of the schedule has been played.
func (l *League) Complete() bool { return l.days != nil && l.cursor == len(l.days) }

// CurrentMatchday is the 1-based number of the next matchday to play (MatchdayCount()+1 when complete).
func (l *League) CurrentMatchday() int { return l.cursor + 1 }

func (l *League) MatchdayCount() int { return len(l.days) }

// Schedule returns the generated matchdays.
func (l *League) Schedule() []schedule.Matchday {
	out := make([]schedule.Matchday, len(l.days))
	copy(out, l.days)
	return out
}

// GenerateSchedule builds a fresh double round-robin. The previous schedule is kept if generation fails.
// Regenerating is allowed while no matchday has been played, and after the season is complete, in which
// case the finished season is discarded along with its team records. A season in progress is a state
// violation: it must be Reset first.
func (l *League) GenerateSchedule() error {
	if l.InProgress() {
		return fmt.Errorf("%w: %s season is in progress, reset it first", model.ErrInvalidState, l.Name)
	}
	days, err := schedule.DoubleRoundRobin(l.teams, schedule.Options{Start: l.clock.Now(), Interval: l.interval})
	if err != nil {
		return fmt.Errorf("generate %s schedule: %w", l.Name, err)
	}
	if l.cursor > 0 {
		l.resetRecords()
	}
	l.days = days
	l.cursor = 0
	l.refreshTable()
	l.log.Info().Int("teams", len(l.teams)).Int("matchdays", len(days)).Msg("schedule generated")
	return nil
}

// SimulateMatchday plays every unplayed match of the current matchday, re-sorts the table and advances.
func (l *League) SimulateMatchday() (schedule.Matchday, error) {
	if l.days == nil {
		return schedule.Matchday{}, fmt.Errorf("%w: %s has no schedule", model.ErrInvalidState, l.Name)
	}
	if l.cursor >= len(l.days) {
		return schedule.Matchday{}, fmt.Errorf("%w: %s season is already complete", model.ErrInvalidState, l.Name)
	}
	day := l.days[l.cursor]
	for _, m := range day.Matches {
		if m.Completed() {
			continue
		}
		if err := l.engine.Simulate(m); err != nil {
			return day, fmt.Errorf("matchday %d: %w", day.Number, err)
		}
		if err := m.ApplyToRecords(); err != nil {
			return day, fmt.Errorf("matchday %d: %w", day.Number, err)
		}
	}
	l.refreshTable()
	l.cursor++

	l.log.Debug().Int("matchday", day.Number).Msg("matchday simulated")
	if l.hook != nil {
		l.hook(day, l.Standings())
	}
	return day, nil
}

// SimulateSeason plays the whole schedule, generating one if needed.
// A partially or fully played season is reset first. ctx is checked between matchdays.
func (l *League) SimulateSeason(ctx context.Context) error {
	if l.days == nil {
		if err := l.GenerateSchedule(); err != nil {
			return err
		}
	}
	if l.cursor > 0 {
		l.Reset()
	}
	start := time.Now()
	for l.cursor < len(l.days) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := l.SimulateMatchday(); err != nil {
			return err
		}
	}
	leader := ""
	if rows := l.Standings(); len(rows) > 0 {
		leader = rows[0].Team
	}
	l.log.Info().Dur("took", time.Since(start)).Str("leader", leader).Msg("season simulated")
	return nil
}

// Reset clears team records, every match and the cursor. Player tallies and injuries persist.
func (l *League) Reset() {
	l.resetRecords()
	for _, d := range l.days {
		for _, m := range d.Matches {
			m.Reset()
		}
	}
	l.cursor = 0
	l.refreshTable()
}

// Standings returns the table in ranking order.
func (l *League) Standings() []model.StandingRow {
	if len(l.table) != len(l.teams) {
		l.refreshTable()
	}
	rows := make([]model.StandingRow, 0, len(l.table))
	for pos, idx := range l.table {
		t := l.teams[idx]
		r := t.Record()
		rows = append(rows, model.StandingRow{
			Position:         pos + 1,
			Team:             t.Name,
			Played:           r.Played(),
			Wins:             r.Wins,
			Draws:            r.Draws,
			Losses:           r.Losses,
			GoalsScored:      r.GoalsScored,
			GoalsConceded:    r.GoalsConceded,
			GoalDifferential: r.GoalDifferential(),
			Points:           r.Points(),
		})
	}
	return rows
}

// TeamPosition returns the 1-based table position of the team called name.
func (l *League) TeamPosition(name string) (int, error) {
	for _, row := range l.Standings() {
		if row.Team == name {
			return row.Position, nil
		}
	}
	return 0, fmt.Errorf("%w: no team %s in %s", model.ErrNotFound, name, l.Name)
}

// Top returns the first k teams of the table.
func (l *League) Top(k int) []*model.Team {
	if len(l.table) != len(l.teams) {
		l.refreshTable()
	}
	if k > len(l.table) {
		k = len(l.table)
	}
	out := make([]*model.Team, 0, k)
	for _, idx := range l.table[:max(k, 0)] {
		out = append(out, l.teams[idx])
	}
	return out
}

// Results snapshots every played matchday.
func (l *League) Results() []model.MatchdayResult {
	out := make([]model.MatchdayResult, 0, l.cursor)
	for _, d := range l.days[:l.cursor] {
		mr := model.MatchdayResult{Number: d.Number, Matches: make([]model.MatchResult, 0, len(d.Matches))}
		for _, m := range d.Matches {
			mr.Matches = append(mr.Matches, m.Result())
		}
		out = append(out, mr)
	}
	return out
}

// TopScorers ranks the league's players by goals, then assists, then name.
func (l *League) TopScorers(n int) []model.ScorerRow {
	var rows []model.ScorerRow
	for _, t := range l.teams {
		for _, p := range t.Players() {
			if p.Goals == 0 && p.Assists == 0 {
				continue
			}
			rows = append(rows, model.ScorerRow{Player: p.Name, Team: t.Name, Goals: p.Goals, Assists: p.Assists})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Goals != rows[j].Goals {
			return rows[i].Goals > rows[j].Goals
		}
		if rows[i].Assists != rows[j].Assists {
			return rows[i].Assists > rows[j].Assists
		}
		return rows[i].Player < rows[j].Player
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// Less orders two teams for the table: points, goal differential, goals scored (all descending), then name.
func Less(a, b *model.Team) bool {
	ra, rb := a.Record(), b.Record()
	if ra.Points() != rb.Points() {
		return ra.Points() > rb.Points()
	}
	if ra.GoalDifferential() != rb.GoalDifferential() {
		return ra.GoalDifferential() > rb.GoalDifferential()
	}
	if ra.GoalsScored != rb.GoalsScored {
		return ra.GoalsScored > rb.GoalsScored
	}
	return a.Name < b.Name
}

func (l *League) refreshTable() {
	table := make([]int, len(l.teams))
	for i := range table {
		table[i] = i
	}
	sort.SliceStable(table, func(i, j int) bool { return Less(l.teams[table[i]], l.teams[table[j]]) })
	l.table = table
}

// invalidate drops the schedule after a team set change. Results of a played season go with it, so
// the next season starts from zeroed records.
func (l *League) invalidate() {
	if l.days != nil {
		l.log.Debug().Msg("team set changed, schedule discarded")
	}
	if l.cursor > 0 {
		l.resetRecords()
	}
	l.days = nil
	l.cursor = 0
	l.refreshTable()
}

func (l *League) resetRecords() {
	for _, t := range l.teams {
		t.ResetRecord()
	}
}

func (l *League) indexOf(name string) int {
	for i, t := range l.teams {
		if t.Name == name {
			return i
		}
	}
	return -1
}
