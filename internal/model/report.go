package model

import "time"

// The types below are read-only result shapes handed to the text and JSON reporters.
// They are snapshots; mutating them never touches the simulation state.

// GoalEvent is one goal as it appears in a match report.
type GoalEvent struct {
	Minute   int    `json:"minute"`
	Side     string `json:"side"`
	Team     string `json:"team"`
	Scorer   string `json:"scorer"`
	Assister string `json:"assister,omitempty"`
}

// MatchResult summarises a fixture, played or not.
type MatchResult struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Kickoff   *time.Time  `json:"kickoff,omitempty"`
	Home      string      `json:"home"`
	Away      string      `json:"away"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	Completed bool        `json:"completed"`
	Outcome   string      `json:"outcome"`
	Goals     []GoalEvent `json:"goals,omitempty"`
	Injuries  []string    `json:"injuries,omitempty"`
}

// StandingRow is one line of a league table.
type StandingRow struct {
	Position         int    `json:"position"`
	Team             string `json:"team"`
	Played           int    `json:"played"`
	Wins             int    `json:"wins"`
	Draws            int    `json:"draws"`
	Losses           int    `json:"losses"`
	GoalsScored      int    `json:"goals_scored"`
	GoalsConceded    int    `json:"goals_conceded"`
	GoalDifferential int    `json:"goal_differential"`
	Points           int    `json:"points"`
}

// MatchdayResult groups the fixtures of one league matchday.
type MatchdayResult struct {
	Number  int           `json:"number"`
	Matches []MatchResult `json:"matches"`
}

// BracketSlot is one position of a knockout round.
type BracketSlot struct {
	Index  int          `json:"index"`
	Status string       `json:"status"` // pending, partial, bye, scheduled, played
	Bye    string       `json:"bye,omitempty"`
	Home   string       `json:"home,omitempty"`
	Match  *MatchResult `json:"match,omitempty"`
	Winner string       `json:"winner,omitempty"`
}

// RoundResult is a knockout round snapshot.
type RoundResult struct {
	Number int           `json:"number"`
	Name   string        `json:"name"`
	Slots  []BracketSlot `json:"slots"`
}

// ScorerRow aggregates a player's season output for the top-scorer list.
type ScorerRow struct {
	Player  string `json:"player"`
	Team    string `json:"team"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
}

// LeagueReport is the outcome of a full league season.
type LeagueReport struct {
	Name       string           `json:"name"`
	Region     string           `json:"region,omitempty"`
	Seed       uint64           `json:"seed"`
	Standings  []StandingRow    `json:"standings"`
	Matchdays  []MatchdayResult `json:"matchdays,omitempty"`
	TopScorers []ScorerRow      `json:"top_scorers,omitempty"`
}

// TournamentReport is the outcome of a knockout cup.
type TournamentReport struct {
	Name   string        `json:"name"`
	Seed   uint64        `json:"seed"`
	Rounds []RoundResult `json:"rounds"`
	Winner string        `json:"winner"`
}

// ChampionshipReport bundles the domestic leagues and the cup their top teams played.
type ChampionshipReport struct {
	Seed      uint64           `json:"seed"`
	Leagues   []LeagueReport   `json:"leagues"`
	Qualified []string         `json:"qualified"`
	Cup       TournamentReport `json:"cup"`
}
