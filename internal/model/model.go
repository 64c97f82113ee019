// Package model contains domain entities and DTOs used across layers.
// Entities carry just enough behavior to keep their own invariants (roster uniqueness,
// derived rating, derived points); simulation logic lives in the engine packages.
package model

import (
	"fmt"
	"strings"
)

// Rating bounds and roster defaults.
const (
	MinRating             = 1
	MaxRating             = 100
	MinJerseyNumber       = 1
	MaxJerseyNumber       = 99
	DefaultRosterCapacity = 25
)

// Position is a player's role on the pitch.
type Position uint8

const (
	PositionUnknown Position = iota
	PositionGoalkeeper
	PositionDefender
	PositionMidfielder
	PositionForward
)

var positionCodes = map[Position]string{
	PositionGoalkeeper: "GK",
	PositionDefender:   "DEF",
	PositionMidfielder: "MID",
	PositionForward:    "FWD",
}

func (p Position) String() string {
	if code, ok := positionCodes[p]; ok {
		return code
	}
	return "UNKNOWN"
}

// Valid reports whether p is one of the four playing positions.
func (p Position) Valid() bool {
	_, ok := positionCodes[p]
	return ok
}

// MarshalText renders the short position code so JSON payloads stay readable.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts every spelling ParsePosition does.
func (p *Position) UnmarshalText(text []byte) error {
	pos, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = pos
	return nil
}

// ParsePosition maps short codes ("gk", "gkp", "def", "mid", "fwd") and long names to a Position.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gk", "gkp", "goalkeeper", "keeper":
		return PositionGoalkeeper, nil
	case "def", "defender":
		return PositionDefender, nil
	case "mid", "midfielder":
		return PositionMidfielder, nil
	case "fwd", "forward", "striker":
		return PositionForward, nil
	}
	return PositionUnknown, fmt.Errorf("%w: unknown position %q", ErrInvalidArgument, s)
}

// Player is a squad member. Season stats only move through the recording hooks below.
type Player struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Rating   int      `json:"rating"`
	Goals    int      `json:"goals"`
	Assists  int      `json:"assists"`
	Injured  bool     `json:"injured"`
}

// NewPlayer validates the identity fields and returns a player with zeroed stats.
func NewPlayer(number int, name string, pos Position, rating int) (*Player, error) {
	name = strings.TrimSpace(name)
	switch {
	case number < MinJerseyNumber || number > MaxJerseyNumber:
		return nil, fmt.Errorf("%w: jersey number %d outside %d..%d", ErrInvalidArgument, number, MinJerseyNumber, MaxJerseyNumber)
	case name == "":
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidArgument)
	case !pos.Valid():
		return nil, fmt.Errorf("%w: invalid position for %s", ErrInvalidArgument, name)
	case rating < MinRating || rating > MaxRating:
		return nil, fmt.Errorf("%w: rating %d outside %d..%d", ErrInvalidArgument, rating, MinRating, MaxRating)
	}
	return &Player{Number: number, Name: name, Position: pos, Rating: rating}, nil
}

func (p *Player) ScoreGoal() { p.Goals++ }
func (p *Player) RecordAssist() { p.Assists++ }
func (p *Player) SetInjured(state bool) { p.Injured = state }

// Record is a team's season tally. Points and goal differential are always derived.
type Record struct {
	Wins          int `json:"wins"`
	Draws         int `json:"draws"`
	Losses        int `json:"losses"`
	GoalsScored   int `json:"goals_scored"`
	GoalsConceded int `json:"goals_conceded"`
}

func (r Record) Played() int { return r.Wins + r.Draws + r.Losses }
func (r Record) GoalDifferential() int { return r.GoalsScored - r.GoalsConceded }
func (r Record) Points() int { return 3*r.Wins + r.Draws }

// Team owns its roster; competitions only reference it.
type Team struct {
	Name    string
	City    string
	Coach   string
	Stadium string

	players  []*Player
	capacity int
	rating   float64
	record   Record
}

// NewTeam creates an empty team with the default roster capacity.
func NewTeam(name, city, coach, stadium string) (*Team, error) {
	return NewTeamWithCapacity(name, city, coach, stadium, DefaultRosterCapacity)
}

// NewTeamWithCapacity creates an empty team that accepts at most capacity players.
func NewTeamWithCapacity(name, city, coach, stadium string, capacity int) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidArgument)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: roster capacity must be > 0", ErrInvalidArgument)
	}
	return &Team{
		Name:     name,
		City:     strings.TrimSpace(city),
		Coach:    strings.TrimSpace(coach),
		Stadium:  strings.TrimSpace(stadium),
		players:  make([]*Player, 0, capacity),
		capacity: capacity,
	}, nil
}

// AddPlayer appends p to the roster and refreshes the team rating.
func (t *Team) AddPlayer(p *Player) error {
	if p == nil {
		return fmt.Errorf("%w: nil player", ErrInvalidArgument)
	}
	if len(t.players) >= t.capacity {
		return fmt.Errorf("%w: %s roster is full (%d/%d)", ErrCapacity, t.Name, len(t.players), t.capacity)
	}
	for _, existing := range t.players {
		if existing.Number == p.Number {
			return fmt.Errorf("%w: %s number %d is taken by %s", ErrAlreadyExists, t.Name, p.Number, existing.Name)
		}
	}
	t.players = append(t.players, p)
	t.refreshRating()
	return nil
}

// RemovePlayerByNumber drops the player wearing number.
func (t *Team) RemovePlayerByNumber(number int) error {
	return t.removeAt(t.indexOf(func(p *Player) bool { return p.Number == number }), fmt.Sprintf("number %d", number))
}

// RemovePlayerByName drops the first player called name.
func (t *Team) RemovePlayerByName(name string) error {
	return t.removeAt(t.indexOf(func(p *Player) bool { return p.Name == name }), fmt.Sprintf("name %q", name))
}

// PlayerByNumber looks a player up by jersey number.
func (t *Team) PlayerByNumber(number int) (*Player, bool) {
	if i := t.indexOf(func(p *Player) bool { return p.Number == number }); i >= 0 {
		return t.players[i], true
	}
	return nil, false
}

// Players returns the roster in insertion order. The slice is a copy; the players are shared.
func (t *Team) Players() []*Player {
	out := make([]*Player, len(t.players))
	copy(out, t.players)
	return out
}

func (t *Team) Len() int { return len(t.players) }
func (t *Team) Capacity() int { return t.capacity }
func (t *Team) Rating() float64 { return t.rating }
func (t *Team) Record() Record { return t.record }
func (t *Team) ResetRecord() { t.record = Record{} }
func (t *Team) String() string { return t.Name }

// ApplyResult books one finished match: exactly one of W/D/L plus the goal tally.
func (t *Team) ApplyResult(scored, conceded int) {
	switch {
	case scored > conceded:
		t.record.Wins++
	case scored < conceded:
		t.record.Losses++
	default:
		t.record.Draws++
	}
	t.record.GoalsScored += scored
	t.record.GoalsConceded += conceded
}

func (t *Team) indexOf(match func(*Player) bool) int {
	for i, p := range t.players {
		if match(p) {
			return i
		}
	}
	return -1
}

func (t *Team) removeAt(i int, what string) error {
	if i < 0 {
		return fmt.Errorf("%w: no player with %s on %s", ErrNotFound, what, t.Name)
	}
	t.players = append(t.players[:i], t.players[i+1:]...)
	t.refreshRating()
	return nil
}

func (t *Team) refreshRating() {
	if len(t.players) == 0 {
		t.rating = 0
		return
	}
	total := 0
	for _, p := range t.players {
		total += p.Rating
	}
	t.rating = float64(total) / float64(len(t.players))
}
