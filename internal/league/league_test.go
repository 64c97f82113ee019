package league_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/football-sim/internal/league"
	"github.com/maxviazov/football-sim/internal/match"
	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/rng"
	"github.com/maxviazov/football-sim/internal/schedule"
)

func newTeam(t *testing.T, name string, rating int) *model.Team {
	t.Helper()
	team, err := model.NewTeam(name, "City", "Coach", "Stadium")
	require.NoError(t, err)
	positions := []model.Position{
		model.PositionGoalkeeper,
		model.PositionDefender, model.PositionDefender, model.PositionDefender, model.PositionDefender,
		model.PositionMidfielder, model.PositionMidfielder, model.PositionMidfielder,
		model.PositionForward, model.PositionForward, model.PositionForward,
	}
	for i, pos := range positions {
		p, err := model.NewPlayer(i+1, fmt.Sprintf("%s #%d", name, i+1), pos, rating)
		require.NoError(t, err)
		require.NoError(t, team.AddPlayer(p))
	}
	return team
}

func newLeague(t *testing.T, seed uint64, opts ...league.Option) *league.League {
	t.Helper()
	e, err := match.NewEngine(match.DefaultConfig(), rng.New(seed), zerolog.New(io.Discard))
	require.NoError(t, err)
	l, err := league.New("Test League", "Nowhere", 0, e, opts...)
	require.NoError(t, err)
	return l
}

func fill(t *testing.T, l *league.League, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, l.AddTeam(newTeam(t, n, 70)))
	}
}

func assertTableInvariants(t *testing.T, l *league.League) {
	t.Helper()
	rows := l.Standings()
	require.Len(t, rows, len(l.Teams()))
	for i, r := range rows {
		assert.Equal(t, i+1, r.Position)
		assert.Equal(t, 3*r.Wins+r.Draws, r.Points)
		assert.Equal(t, r.GoalsScored-r.GoalsConceded, r.GoalDifferential)
		assert.Equal(t, r.Wins+r.Draws+r.Losses, r.Played)
		if i == 0 {
			continue
		}
		a, err := l.TeamByName(rows[i-1].Team)
		require.NoError(t, err)
		b, err := l.TeamByName(r.Team)
		require.NoError(t, err)
		assert.True(t, league.Less(a, b), "%s should rank above %s", a.Name, b.Name)
	}
}

func TestFourTeamSeason(t *testing.T) {
	l := newLeague(t, 11)
	fill(t, l, "A", "B", "C", "D")

	require.NoError(t, l.GenerateSchedule())
	require.Equal(t, 6, l.MatchdayCount())
	for _, d := range l.Schedule() {
		require.Len(t, d.Matches, 2)
	}

	for i := 0; i < 6; i++ {
		_, err := l.SimulateMatchday()
		require.NoError(t, err)
		assertTableInvariants(t, l)
	}
	assert.True(t, l.Complete())

	_, err := l.SimulateMatchday()
	assert.ErrorIs(t, err, model.ErrInvalidState)

	const matches = 12
	var wdl, points, decisive, drawn int
	for _, r := range l.Standings() {
		wdl += r.Wins + r.Draws + r.Losses
		points += r.Points
	}
	for _, md := range l.Results() {
		for _, m := range md.Matches {
			if m.HomeScore == m.AwayScore {
				drawn++
			} else {
				decisive++
			}
		}
	}
	assert.Equal(t, matches, decisive+drawn)
	assert.Equal(t, 2*matches, wdl)
	assert.Equal(t, 3*decisive+2*drawn, points)
}

func TestLess_TieBreakChain(t *testing.T) {
	mk := func(name string, results ...[2]int) *model.Team {
		team, err := model.NewTeam(name, "", "", "")
		require.NoError(t, err)
		for _, r := range results {
			team.ApplyResult(r[0], r[1])
		}
		return team
	}
	morePoints := mk("Zeta", [2]int{1, 0})
	fewer := mk("Alpha", [2]int{0, 0})
	assert.True(t, league.Less(morePoints, fewer))

	betterGD := mk("Y", [2]int{3, 0})
	worseGD := mk("X", [2]int{1, 0})
	assert.True(t, league.Less(betterGD, worseGD))

	moreGoals := mk("Q", [2]int{3, 2})
	fewerGoals := mk("P", [2]int{1, 0})
	assert.True(t, league.Less(moreGoals, fewerGoals))

	byName := mk("Apple", [2]int{1, 1})
	other := mk("Banana", [2]int{1, 1})
	assert.True(t, league.Less(byName, other))
	assert.False(t, league.Less(other, byName))
}

func TestSimulateMatchday_RequiresSchedule(t *testing.T) {
	l := newLeague(t, 1)
	fill(t, l, "A", "B")
	_, err := l.SimulateMatchday()
	assert.ErrorIs(t, err, model.ErrInvalidState)
}

func TestGenerateSchedule_FailureKeepsState(t *testing.T) {
	l := newLeague(t, 1)
	fill(t, l, "A", "B", "C")
	assert.ErrorIs(t, l.GenerateSchedule(), model.ErrInvalidArgument)
	assert.False(t, l.Scheduled())
	assert.Len(t, l.Standings(), 3)
}

func TestTeamChanges_InvalidateSchedule(t *testing.T) {
	l := newLeague(t, 1)
	fill(t, l, "A", "B", "C", "D")
	require.NoError(t, l.GenerateSchedule())
	require.True(t, l.Scheduled())

	require.NoError(t, l.RemoveTeam("D"))
	assert.False(t, l.Scheduled())
	assert.ErrorIs(t, l.RemoveTeam("D"), model.ErrNotFound)

	fill(t, l, "E")
	require.NoError(t, l.GenerateSchedule())
	_, err := l.SimulateMatchday()
	require.NoError(t, err)

	assert.ErrorIs(t, l.AddTeam(newTeam(t, "F", 70)), model.ErrInvalidState)
	assert.ErrorIs(t, l.RemoveTeam("A"), model.ErrInvalidState)
	assert.ErrorIs(t, l.GenerateSchedule(), model.ErrInvalidState)

	l.Reset()
	assert.Equal(t, 1, l.CurrentMatchday())
	for _, row := range l.Standings() {
		assert.Zero(t, row.Played)
	}
	require.NoError(t, l.GenerateSchedule())
}

func TestTeamChanges_AfterCompleteSeasonStartFresh(t *testing.T) {
	l := newLeague(t, 5)
	fill(t, l, "A", "B", "C", "D")
	require.NoError(t, l.SimulateSeason(context.Background()))
	require.True(t, l.Complete())

	fill(t, l, "E", "F")
	for _, row := range l.Standings() {
		assert.Zero(t, row.Played, row.Team)
		assert.Zero(t, row.Points, row.Team)
	}

	require.NoError(t, l.SimulateSeason(context.Background()))
	n := len(l.Teams())
	require.Equal(t, 6, n)
	assertTableInvariants(t, l)
	for _, row := range l.Standings() {
		assert.Equal(t, 2*(n-1), row.Played, row.Team)
	}

	require.NoError(t, l.RemoveTeam("E"))
	require.NoError(t, l.RemoveTeam("F"))
	require.NoError(t, l.SimulateSeason(context.Background()))
	n = len(l.Teams())
	require.Equal(t, 4, n)
	for _, row := range l.Standings() {
		assert.Equal(t, 2*(n-1), row.Played, row.Team)
	}
}

func TestGenerateSchedule_RegenerateBeforeKickoff(t *testing.T) {
	l := newLeague(t, 2)
	fill(t, l, "A", "B", "C", "D")
	require.NoError(t, l.GenerateSchedule())
	first := l.Schedule()

	require.NoError(t, l.GenerateSchedule())
	second := l.Schedule()
	require.Len(t, second, len(first))
	assert.NotSame(t, first[0].Matches[0], second[0].Matches[0])
	assert.Equal(t, 1, l.CurrentMatchday())
}

func TestAddTeam_Errors(t *testing.T) {
	e, err := match.NewEngine(match.DefaultConfig(), rng.New(1), zerolog.Nop())
	require.NoError(t, err)
	l, err := league.New("Tiny", "", 2, e)
	require.NoError(t, err)

	assert.ErrorIs(t, l.AddTeam(nil), model.ErrInvalidArgument)
	fill(t, l, "A")
	assert.ErrorIs(t, l.AddTeam(newTeam(t, "A", 60)), model.ErrAlreadyExists)
	fill(t, l, "B")
	assert.ErrorIs(t, l.AddTeam(newTeam(t, "C", 60)), model.ErrCapacity)

	_, err = league.New(" ", "", 2, e)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, err = league.New("x", "", 2, nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestSimulateSeason_ResetsAndReports(t *testing.T) {
	var calls int
	hook := func(day schedule.Matchday, table []model.StandingRow) {
		calls++
		assert.Len(t, table, 4)
		assert.True(t, day.Completed())
	}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	l := newLeague(t, 5, league.WithMatchdayHook(hook), league.WithClock(clock), league.WithLogger(zerolog.Nop()))
	fill(t, l, "A", "B", "C", "D")

	require.NoError(t, l.SimulateSeason(context.Background()))
	assert.Equal(t, 6, calls)
	assert.Equal(t, clock.Now(), l.Schedule()[0].Kickoff)
	assert.Equal(t, clock.Now().Add(5*schedule.DefaultInterval), l.Schedule()[5].Kickoff)

	require.NoError(t, l.SimulateSeason(context.Background()))
	assert.Equal(t, 12, calls)
	for _, row := range l.Standings() {
		assert.Equal(t, 6, row.Played, "records must be reset before a rerun")
	}
}

func TestSimulateSeason_Cancelled(t *testing.T) {
	l := newLeague(t, 5)
	fill(t, l, "A", "B")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.SimulateSeason(ctx), context.Canceled)
}

func TestTeamPositionAndTop(t *testing.T) {
	l := newLeague(t, 3)
	fill(t, l, "A", "B", "C", "D")
	require.NoError(t, l.SimulateSeason(context.Background()))

	rows := l.Standings()
	for _, row := range rows {
		pos, err := l.TeamPosition(row.Team)
		require.NoError(t, err)
		assert.Equal(t, row.Position, pos)
	}
	_, err := l.TeamPosition("nobody")
	assert.ErrorIs(t, err, model.ErrNotFound)

	top := l.Top(2)
	require.Len(t, top, 2)
	assert.Equal(t, rows[0].Team, top[0].Name)
	assert.Equal(t, rows[1].Team, top[1].Name)
	assert.Len(t, l.Top(10), 4)

	goals := 0
	for _, r := range rows {
		goals += r.GoalsScored
	}
	scored := 0
	for _, s := range l.TopScorers(0) {
		scored += s.Goals
	}
	assert.Equal(t, goals, scored)
}
