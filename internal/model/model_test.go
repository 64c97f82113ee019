package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/football-sim/internal/model"
)

func mustPlayer(t *testing.T, number int, name string, pos model.Position, rating int) *model.Player {
	t.Helper()
	p, err := model.NewPlayer(number, name, pos, rating)
	require.NoError(t, err)
	return p
}

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in   string
		want model.Position
		ok   bool
	}{
		{"gk", model.PositionGoalkeeper, true},
		{"GKP", model.PositionGoalkeeper, true},
		{" def ", model.PositionDefender, true},
		{"Midfielder", model.PositionMidfielder, true},
		{"fwd", model.PositionForward, true},
		{"striker", model.PositionForward, true},
		{"libero", model.PositionUnknown, false},
		{"", model.PositionUnknown, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := model.ParsePosition(tc.in)
			if tc.ok {
				require.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, model.ErrInvalidArgument)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewPlayer_Validation(t *testing.T) {
	cases := []struct {
		name   string
		number int
		pname  string
		pos    model.Position
		rating int
	}{
		{"zero number", 0, "A", model.PositionForward, 70},
		{"number too high", 100, "A", model.PositionForward, 70},
		{"blank name", 9, "  ", model.PositionForward, 70},
		{"unknown position", 9, "A", model.PositionUnknown, 70},
		{"rating too low", 9, "A", model.PositionForward, 0},
		{"rating too high", 9, "A", model.PositionForward, 101},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.NewPlayer(tc.number, tc.pname, tc.pos, tc.rating)
			assert.ErrorIs(t, err, model.ErrInvalidArgument)
		})
	}

	p := mustPlayer(t, 10, " Pele ", model.PositionForward, 99)
	assert.Equal(t, "Pele", p.Name)
	assert.Zero(t, p.Goals)
	assert.False(t, p.Injured)
}

func TestTeam_RosterOperations(t *testing.T) {
	team, err := model.NewTeamWithCapacity("Reds", "City 1", "Coach", "Ground", 3)
	require.NoError(t, err)
	assert.Zero(t, team.Rating())

	require.NoError(t, team.AddPlayer(mustPlayer(t, 1, "Keeper", model.PositionGoalkeeper, 60)))
	require.NoError(t, team.AddPlayer(mustPlayer(t, 9, "Striker", model.PositionForward, 80)))
	assert.InDelta(t, 70.0, team.Rating(), 1e-9)

	err = team.AddPlayer(mustPlayer(t, 9, "Copycat", model.PositionForward, 50))
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
	assert.Equal(t, 2, team.Len())

	require.NoError(t, team.AddPlayer(mustPlayer(t, 5, "Back", model.PositionDefender, 70)))
	err = team.AddPlayer(mustPlayer(t, 6, "Extra", model.PositionMidfielder, 70))
	assert.ErrorIs(t, err, model.ErrCapacity)
	assert.ErrorIs(t, team.AddPlayer(nil), model.ErrInvalidArgument)

	p, ok := team.PlayerByNumber(9)
	require.True(t, ok)
	assert.Equal(t, "Striker", p.Name)

	require.NoError(t, team.RemovePlayerByName("Keeper"))
	assert.InDelta(t, 75.0, team.Rating(), 1e-9)
	assert.ErrorIs(t, team.RemovePlayerByNumber(1), model.ErrNotFound)
	require.NoError(t, team.RemovePlayerByNumber(9))
	require.NoError(t, team.RemovePlayerByNumber(5))
	assert.Zero(t, team.Rating())
	assert.Zero(t, team.Len())
}

func TestTeam_PlayersIsCopy(t *testing.T) {
	team, err := model.NewTeam("Blues", "", "", "")
	require.NoError(t, err)
	require.NoError(t, team.AddPlayer(mustPlayer(t, 7, "Winger", model.PositionForward, 75)))

	ps := team.Players()
	ps[0] = nil
	assert.NotNil(t, team.Players()[0])
	assert.Equal(t, model.DefaultRosterCapacity, team.Capacity())
}

func TestNewTeam_RequiresName(t *testing.T) {
	_, err := model.NewTeam(" ", "x", "y", "z")
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))
	_, err = model.NewTeamWithCapacity("ok", "", "", "", 0)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestTeam_ApplyResult(t *testing.T) {
	team, err := model.NewTeam("Greens", "", "", "")
	require.NoError(t, err)

	team.ApplyResult(3, 1)
	team.ApplyResult(0, 0)
	team.ApplyResult(1, 2)

	rec := team.Record()
	assert.Equal(t, model.Record{Wins: 1, Draws: 1, Losses: 1, GoalsScored: 4, GoalsConceded: 3}, rec)
	assert.Equal(t, 3, rec.Played())
	assert.Equal(t, 4, rec.Points())
	assert.Equal(t, 1, rec.GoalDifferential())

	team.ResetRecord()
	assert.Equal(t, model.Record{}, team.Record())
}

func TestPosition_TextRoundTrip(t *testing.T) {
	var p model.Position
	require.NoError(t, p.UnmarshalText([]byte("mid")))
	assert.Equal(t, model.PositionMidfielder, p)
	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "MID", string(b))
	assert.Error(t, p.UnmarshalText([]byte("sweeper")))
}
