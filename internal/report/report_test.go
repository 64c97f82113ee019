package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/report"
)

func TestStandings(t *testing.T) {
	var buf bytes.Buffer
	rows := []model.StandingRow{
		{Position: 1, Team: "Reds", Played: 2, Wins: 2, GoalsScored: 5, GoalsConceded: 1, GoalDifferential: 4, Points: 6},
		{Position: 2, Team: "Blues", Played: 2, Losses: 2, GoalsScored: 1, GoalsConceded: 5, GoalDifferential: -4},
	}
	require.NoError(t, report.Standings(&buf, "Test League", rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Test League", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Pos"))
	assert.Contains(t, lines[2], "Reds")
	assert.Contains(t, lines[2], "+4")
	assert.Contains(t, lines[3], "-4")
}

func TestMatch(t *testing.T) {
	var buf bytes.Buffer
	m := model.MatchResult{
		Label: "R1-M1", Home: "Reds", Away: "Blues", HomeScore: 1, AwayScore: 0, Completed: true,
		Goals:    []model.GoalEvent{{Minute: 67, Side: "home", Team: "Reds", Scorer: "Forward1", Assister: "Midfielder2"}},
		Injuries: []string{"Defender3"},
	}
	require.NoError(t, report.Match(&buf, m))
	out := buf.String()
	assert.Contains(t, out, "[R1-M1] Reds 1 - 0 Blues")
	assert.Contains(t, out, "67' Forward1 (Reds), assist Midfielder2")
	assert.Contains(t, out, "injured: Defender3")
}

func TestBracket(t *testing.T) {
	var buf bytes.Buffer
	played := &model.MatchResult{Home: "A", Away: "B", HomeScore: 2, AwayScore: 2, Completed: true}
	rounds := []model.RoundResult{
		{Number: 1, Name: "Semi-Finals", Slots: []model.BracketSlot{
			{Index: 1, Status: "played", Match: played, Winner: "A"},
			{Index: 2, Status: "bye", Bye: "C", Winner: "C"},
		}},
		{Number: 2, Name: "Final", Slots: []model.BracketSlot{
			{Index: 1, Status: "partial", Home: "A"},
		}},
	}
	require.NoError(t, report.Bracket(&buf, rounds))
	out := buf.String()
	assert.Contains(t, out, "Semi-Finals")
	assert.Contains(t, out, "-> A")
	assert.Contains(t, out, "bye")
	assert.Contains(t, out, "TBD")
}

func TestChampionship(t *testing.T) {
	var buf bytes.Buffer
	rep := model.ChampionshipReport{
		Seed: 9,
		Leagues: []model.LeagueReport{{
			Name: "Alpha", Region: "Nowhere",
			Standings:  []model.StandingRow{{Position: 1, Team: "A"}},
			Matchdays:  []model.MatchdayResult{{Number: 1, Matches: []model.MatchResult{{Home: "A", Away: "B", Completed: true}}}},
			TopScorers: []model.ScorerRow{{Player: "Forward1", Team: "A", Goals: 3}},
		}},
		Qualified: []string{"A"},
		Cup:       model.TournamentReport{Name: "Cup", Winner: "A"},
	}
	require.NoError(t, report.Championship(&buf, rep, true))
	out := buf.String()
	assert.Contains(t, out, "Alpha (Nowhere)")
	assert.Contains(t, out, "Matchday 1")
	assert.Contains(t, out, "Top scorers")
	assert.Contains(t, out, "Qualified: A")
	assert.Contains(t, out, "Cup winner: A")
	assert.Contains(t, out, "seed: 9")
}
