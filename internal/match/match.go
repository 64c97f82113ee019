// Package match holds a single fixture and the engine that plays it.
package match

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maxviazov/football-sim/internal/model"
)

// Side identifies which team of a fixture an event belongs to.
type Side uint8

const (
	SideHome Side = iota
	SideAway
)

func (s Side) String() string {
	if s == SideHome {
		return "home"
	}
	return "away"
}

// Outcome is the result of a fixture. Pending until the match has been finished.
type Outcome uint8

const (
	OutcomePending Outcome = iota
	OutcomeHomeWin
	OutcomeAwayWin
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHomeWin:
		return "home_win"
	case OutcomeAwayWin:
		return "away_win"
	case OutcomeDraw:
		return "draw"
	default:
		return "pending"
	}
}

// Goal is one scoring event. Assister is nil for unassisted goals.
type Goal struct {
	Scorer   *model.Player
	Assister *model.Player
	Side     Side
	Minute   int
}

// Match is a fixture between two referenced teams.
// Score fields are only changed through RecordGoal so they always equal the per-side goal count.
type Match struct {
	ID      uuid.UUID
	Label   string
	Kickoff time.Time

	home, away *model.Team
	homeScore  int
	awayScore  int
	goals      []Goal
	injuries   []*model.Player
	completed  bool
	recorded   bool
}

// New creates an unplayed fixture.
func New(home, away *model.Team, label string) (*Match, error) {
	if home == nil || away == nil {
		return nil, fmt.Errorf("%w: match needs both teams", model.ErrInvalidArgument)
	}
	if home == away {
		return nil, fmt.Errorf("%w: %s cannot play itself", model.ErrInvalidArgument, home.Name)
	}
	return &Match{ID: uuid.New(), Label: label, home: home, away: away}, nil
}

func (m *Match) Home() *model.Team { return m.home }
func (m *Match) Away() *model.Team { return m.away }
func (m *Match) HomeScore() int { return m.homeScore }
func (m *Match) AwayScore() int { return m.awayScore }
func (m *Match) Completed() bool { return m.completed }

// RecordsApplied reports whether the result has been booked into both team records.
func (m *Match) RecordsApplied() bool { return m.recorded }

// Goals returns the goal events in chronological order.
func (m *Match) Goals() []Goal {
	out := make([]Goal, len(m.goals))
	copy(out, m.goals)
	return out
}

// Injuries lists the players injured in this match.
func (m *Match) Injuries() []*model.Player {
	out := make([]*model.Player, len(m.injuries))
	copy(out, m.injuries)
	return out
}

// Team returns the team playing on side s.
func (m *Match) Team(s Side) *model.Team {
	if s == SideHome {
		return m.home
	}
	return m.away
}

// Involves reports whether t is one of the two sides.
func (m *Match) Involves(t *model.Team) bool { return t != nil && (m.home == t || m.away == t) }

// Outcome derives the result from the score once the match is completed.
func (m *Match) Outcome() Outcome {
	switch {
	case !m.completed:
		return OutcomePending
	case m.homeScore > m.awayScore:
		return OutcomeHomeWin
	case m.homeScore < m.awayScore:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}

// Winner returns the winning team, or nil for a draw.
func (m *Match) Winner() (*model.Team, error) {
	switch m.Outcome() {
	case OutcomePending:
		return nil, fmt.Errorf("%w: %s vs %s has not been played", model.ErrInvalidState, m.home.Name, m.away.Name)
	case OutcomeHomeWin:
		return m.home, nil
	case OutcomeAwayWin:
		return m.away, nil
	default:
		return nil, nil
	}
}

// RecordGoal appends a goal, bumps the side's score and the players' tallies.
func (m *Match) RecordGoal(scorer, assister *model.Player, side Side, minute int) error {
	switch {
	case m.completed:
		return fmt.Errorf("%w: match %s is already completed", model.ErrInvalidState, m.Label)
	case scorer == nil:
		return fmt.Errorf("%w: goal without a scorer", model.ErrInvalidArgument)
	case side != SideHome && side != SideAway:
		return fmt.Errorf("%w: side %d", model.ErrInvalidArgument, side)
	case minute < 0:
		return fmt.Errorf("%w: minute %d", model.ErrInvalidArgument, minute)
	case assister == scorer:
		return fmt.Errorf("%w: %s cannot assist their own goal", model.ErrInvalidArgument, scorer.Name)
	case !onRoster(m.Team(side), scorer):
		return fmt.Errorf("%w: scorer %s does not play for %s", model.ErrInvalidArgument, scorer.Name, m.Team(side).Name)
	case assister != nil && !onRoster(m.Team(side), assister):
		return fmt.Errorf("%w: assister %s does not play for %s", model.ErrInvalidArgument, assister.Name, m.Team(side).Name)
	}

	m.goals = append(m.goals, Goal{Scorer: scorer, Assister: assister, Side: side, Minute: minute})
	if side == SideHome {
		m.homeScore++
	} else {
		m.awayScore++
	}
	scorer.ScoreGoal()
	if assister != nil {
		assister.RecordAssist()
	}
	return nil
}

// Finish marks the match as played. A match can only be finished once.
func (m *Match) Finish() error {
	if m.completed {
		return fmt.Errorf("%w: match %s is already completed", model.ErrInvalidState, m.Label)
	}
	m.completed = true
	return nil
}

// ApplyToRecords books the result into both team records exactly once.
func (m *Match) ApplyToRecords() error {
	if !m.completed {
		return fmt.Errorf("%w: %s vs %s has not been played", model.ErrInvalidState, m.home.Name, m.away.Name)
	}
	if m.recorded {
		return fmt.Errorf("%w: result of %s vs %s already recorded", model.ErrInvalidState, m.home.Name, m.away.Name)
	}
	m.home.ApplyResult(m.homeScore, m.awayScore)
	m.away.ApplyResult(m.awayScore, m.homeScore)
	m.recorded = true
	return nil
}

// Reset returns the fixture to its unplayed state. Player tallies are not rolled back.
func (m *Match) Reset() {
	m.homeScore, m.awayScore = 0, 0
	m.goals = nil
	m.injuries = nil
	m.completed = false
	m.recorded = false
}

// Result snapshots the match for reporting.
func (m *Match) Result() model.MatchResult {
	res := model.MatchResult{
		ID:        m.ID.String(),
		Label:     m.Label,
		Home:      m.home.Name,
		Away:      m.away.Name,
		HomeScore: m.homeScore,
		AwayScore: m.awayScore,
		Completed: m.completed,
		Outcome:   m.Outcome().String(),
	}
	if !m.Kickoff.IsZero() {
		k := m.Kickoff
		res.Kickoff = &k
	}
	for _, g := range m.goals {
		ev := model.GoalEvent{Minute: g.Minute, Side: g.Side.String(), Team: m.Team(g.Side).Name, Scorer: g.Scorer.Name}
		if g.Assister != nil {
			ev.Assister = g.Assister.Name
		}
		res.Goals = append(res.Goals, ev)
	}
	for _, p := range m.injuries {
		res.Injuries = append(res.Injuries, p.Name)
	}
	return res
}

func onRoster(team *model.Team, p *model.Player) bool {
	for _, q := range team.Players() {
		if q == p {
			return true
		}
	}
	return false
}
