// Package tournament runs a single-elimination cup.
//
// Byes: for T teams the bracket is sized to the next power of two P. Round one has P/2 slots;
// after the draw the first T-P/2 slots are contested and the trailing P-T slots are byes.
// A drawn match is won by the home team.
package tournament

import (
	"context"
	"fmt"
	"math/bits"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/football-sim/internal/match"
	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/rng"
)

// MaxTeams is the largest supported field.
const MaxTeams = 32

// SlotStatus describes how far a bracket slot is resolved.
type SlotStatus uint8

const (
	SlotPending SlotStatus = iota
	SlotPartial
	SlotBye
	SlotScheduled
	SlotPlayed
)

func (s SlotStatus) String() string {
	switch s {
	case SlotPartial:
		return "partial"
	case SlotBye:
		return "bye"
	case SlotScheduled:
		return "scheduled"
	case SlotPlayed:
		return "played"
	default:
		return "pending"
	}
}

// Slot is one position of a round: a match, a bye, a half-known pairing or nothing yet.
type Slot struct {
	bye   *model.Team
	home  *model.Team
	match *match.Match
}

func (s Slot) Match() *match.Match { return s.match }
func (s Slot) Bye() *model.Team { return s.bye }

// Known returns the team already placed in a partially resolved slot.
func (s Slot) Known() *model.Team { return s.home }

func (s Slot) Status() SlotStatus {
	switch {
	case s.bye != nil:
		return SlotBye
	case s.match != nil && s.match.Completed():
		return SlotPlayed
	case s.match != nil:
		return SlotScheduled
	case s.home != nil:
		return SlotPartial
	default:
		return SlotPending
	}
}

// Winner is the team that advances from the slot, or nil while undecided.
func (s Slot) Winner() *model.Team {
	if s.bye != nil {
		return s.bye
	}
	if s.match == nil || !s.match.Completed() {
		return nil
	}
	w, _ := s.match.Winner()
	if w == nil {
		return s.match.Home()
	}
	return w
}

// RoundHook observes each round once it has been played.
type RoundHook func(round model.RoundResult)

type Option func(*Tournament)

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tournament) {
		t.log = logger.With().Str("module", "tournament").Str("tournament", t.Name).Logger()
	}
}

func WithRoundHook(fn RoundHook) Option { return func(t *Tournament) { t.hook = fn } }

// Tournament owns the bracket. Teams are referenced, not copied.
type Tournament struct {
	Name string

	teams  []*model.Team
	engine *match.Engine
	src    rng.Source
	hook   RoundHook
	log    zerolog.Logger

	rounds [][]Slot
	cursor int
	winner *model.Team
}

// New creates an empty tournament. src drives the draw; engine plays the matches.
func New(name string, engine *match.Engine, src rng.Source, opts ...Option) (*Tournament, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: tournament name is required", model.ErrInvalidArgument)
	case engine == nil:
		return nil, fmt.Errorf("%w: tournament needs a match engine", model.ErrInvalidArgument)
	case src == nil:
		return nil, fmt.Errorf("%w: tournament needs a random source", model.ErrInvalidArgument)
	}
	t := &Tournament{Name: name, engine: engine, src: src, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// AddTeam enters team into the cup. An undrawn or finished bracket is discarded.
func (t *Tournament) AddTeam(team *model.Team) error {
	switch {
	case team == nil:
		return fmt.Errorf("%w: nil team", model.ErrInvalidArgument)
	case t.InProgress():
		return fmt.Errorf("%w: %s is in progress", model.ErrInvalidState, t.Name)
	case len(t.teams) >= MaxTeams:
		return fmt.Errorf("%w: %s is full (%d teams)", model.ErrCapacity, t.Name, MaxTeams)
	case t.indexOf(team.Name) >= 0:
		return fmt.Errorf("%w: %s already has a team called %s", model.ErrAlreadyExists, t.Name, team.Name)
	}
	t.teams = append(t.teams, team)
	t.Reset()
	return nil
}

// RemoveTeam withdraws the team called name.
func (t *Tournament) RemoveTeam(name string) error {
	if t.InProgress() {
		return fmt.Errorf("%w: %s is in progress", model.ErrInvalidState, t.Name)
	}
	i := t.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: no team %s in %s", model.ErrNotFound, name, t.Name)
	}
	t.teams = append(t.teams[:i], t.teams[i+1:]...)
	t.Reset()
	return nil
}

func (t *Tournament) Teams() []*model.Team {
	out := make([]*model.Team, len(t.teams))
	copy(out, t.teams)
	return out
}

// Drawn reports whether a bracket exists.
func (t *Tournament) Drawn() bool { return t.rounds != nil }

// InProgress is true once a round has been played and before the final.
func (t *Tournament) InProgress() bool { return t.cursor > 0 && t.winner == nil }

func (t *Tournament) Complete() bool { return t.winner != nil }

// TotalRounds is ceil(log2(teams)) once drawn.
func (t *Tournament) TotalRounds() int { return len(t.rounds) }

// CurrentRound is the 1-based number of the next round to play.
func (t *Tournament) CurrentRound() int { return t.cursor + 1 }

// Draw shuffles the teams and builds the bracket. Nothing changes if it fails.
// Redrawing replaces an unplayed or finished bracket; a cup in progress must be Reset first.
func (t *Tournament) Draw() error {
	if t.InProgress() {
		return fmt.Errorf("%w: %s is in progress, reset it first", model.ErrInvalidState, t.Name)
	}
	n := len(t.teams)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 teams, got %d", model.ErrInvalidArgument, n)
	}

	order := t.Teams()
	rng.Shuffle(t.src, order)

	total := roundsFor(n)
	size := 1 << total
	rounds := make([][]Slot, total)
	for r := range rounds {
		rounds[r] = make([]Slot, size>>(r+1))
	}

	contested := n - size/2
	for i := 0; i < contested; i++ {
		m, err := match.New(order[2*i], order[2*i+1], label(1, i))
		if err != nil {
			return err
		}
		rounds[0][i].match = m
	}
	for i, team := range order[2*contested:] {
		rounds[0][contested+i].bye = team
	}
	for r := 1; r < total; r++ {
		if err := advance(rounds, r); err != nil {
			return err
		}
	}

	t.rounds = rounds
	t.cursor = 0
	t.winner = nil
	t.log.Info().Int("teams", n).Int("rounds", total).Int("byes", size-n).Msg("bracket drawn")
	return nil
}

// SimulateRound plays round r (1-based). Only the current round is accepted.
func (t *Tournament) SimulateRound(r int) error {
	switch {
	case t.rounds == nil:
		return fmt.Errorf("%w: %s has not been drawn", model.ErrInvalidState, t.Name)
	case t.winner != nil:
		return fmt.Errorf("%w: %s is already complete", model.ErrInvalidState, t.Name)
	case r < 1 || r > len(t.rounds):
		return fmt.Errorf("%w: round %d outside 1..%d", model.ErrInvalidArgument, r, len(t.rounds))
	case r != t.cursor+1:
		return fmt.Errorf("%w: round %d is not the current round %d", model.ErrInvalidState, r, t.cursor+1)
	}

	slots := t.rounds[r-1]
	for i := range slots {
		switch slots[i].Status() {
		case SlotBye, SlotPlayed:
			continue
		case SlotPending, SlotPartial:
			return fmt.Errorf("%w: round %d slot %d is unresolved", model.ErrInvalidState, r, i+1)
		}
		m := slots[i].match
		if err := t.engine.Simulate(m); err != nil {
			return fmt.Errorf("round %d: %w", r, err)
		}
		if err := m.ApplyToRecords(); err != nil {
			return fmt.Errorf("round %d: %w", r, err)
		}
		if m.Outcome() == match.OutcomeDraw {
			t.log.Debug().Str("match", m.Label).Str("advances", m.Home().Name).Msg("draw settled for home side")
		}
	}

	if r < len(t.rounds) {
		if err := advance(t.rounds, r); err != nil {
			return err
		}
	} else {
		t.winner = slots[0].Winner()
		t.log.Info().Str("winner", t.winner.Name).Msg("tournament complete")
	}
	t.cursor = r

	if t.hook != nil {
		t.hook(t.roundResult(r - 1))
	}
	return nil
}

// SimulateAll draws if needed and plays every remaining round.
func (t *Tournament) SimulateAll(ctx context.Context) (*model.Team, error) {
	if t.rounds == nil || t.winner != nil {
		if err := t.Draw(); err != nil {
			return nil, err
		}
	}
	for t.winner == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := t.SimulateRound(t.cursor + 1); err != nil {
			return nil, err
		}
	}
	return t.winner, nil
}

// Winner returns the champion once the final has been played.
func (t *Tournament) Winner() (*model.Team, error) {
	if t.winner == nil {
		return nil, fmt.Errorf("%w: %s has no winner yet", model.ErrInvalidState, t.Name)
	}
	return t.winner, nil
}

// Round returns the slots of round r (1-based).
func (t *Tournament) Round(r int) ([]Slot, error) {
	if r < 1 || r > len(t.rounds) {
		return nil, fmt.Errorf("%w: round %d outside 1..%d", model.ErrInvalidArgument, r, len(t.rounds))
	}
	out := make([]Slot, len(t.rounds[r-1]))
	copy(out, t.rounds[r-1])
	return out, nil
}

// Rounds snapshots the whole bracket.
func (t *Tournament) Rounds() []model.RoundResult {
	out := make([]model.RoundResult, 0, len(t.rounds))
	for r := range t.rounds {
		out = append(out, t.roundResult(r))
	}
	return out
}

// Reset drops the bracket. Team records and player stats are left alone.
func (t *Tournament) Reset() {
	t.rounds = nil
	t.cursor = 0
	t.winner = nil
}

// RoundName labels round r (1-based) of a bracket with total rounds by the number of teams still in it.
func RoundName(total, r int) string {
	if total < 1 || r < 1 || r > total {
		return ""
	}
	switch teams := 1 << (total - r + 1); teams {
	case 2:
		return "Final"
	case 4:
		return "Semi-Finals"
	case 8:
		return "Quarter-Finals"
	default:
		return fmt.Sprintf("Round of %d", teams)
	}
}

func (t *Tournament) roundResult(r int) model.RoundResult {
	rr := model.RoundResult{Number: r + 1, Name: RoundName(len(t.rounds), r+1)}
	for i, s := range t.rounds[r] {
		slot := model.BracketSlot{Index: i + 1, Status: s.Status().String()}
		if s.bye != nil {
			slot.Bye = s.bye.Name
		}
		if s.home != nil {
			slot.Home = s.home.Name
		}
		if s.match != nil {
			res := s.match.Result()
			slot.Match = &res
		}
		if w := s.Winner(); w != nil {
			slot.Winner = w.Name
		}
		rr.Slots = append(rr.Slots, slot)
	}
	return rr
}

// advance fills round r (0-based) from the winners of feeder slots 2i and 2i+1 of round r-1.
func advance(rounds [][]Slot, r int) error {
	prev := rounds[r-1]
	for i := range rounds[r] {
		s := &rounds[r][i]
		if s.match != nil {
			continue
		}
		a, b := prev[2*i].Winner(), prev[2*i+1].Winner()
		switch {
		case a != nil && b != nil:
			m, err := match.New(a, b, label(r+1, i))
			if err != nil {
				return err
			}
			s.match, s.home = m, nil
		case a != nil:
			s.home = a
		case b != nil:
			s.home = b
		}
	}
	return nil
}

func (t *Tournament) indexOf(name string) int {
	for i, team := range t.teams {
		if team.Name == name {
			return i
		}
	}
	return -1
}

func label(round, slot int) string { return fmt.Sprintf("R%d-M%d", round, slot+1) }

// roundsFor returns ceil(log2(n)) for n >= 2.
func roundsFor(n int) int { return bits.Len(uint(n - 1)) }
