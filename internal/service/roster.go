package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/rng"
)

// Random rosters use the classic 4-3-3 shape with a small rating spread around each line's base.
const ratingSpread = 10

var randomLines = []struct {
	pos   model.Position
	count int
	base  int
	label string
}{
	{model.PositionGoalkeeper, 1, 80, "Goalkeeper"},
	{model.PositionDefender, 4, 78, "Defender"},
	{model.PositionMidfielder, 3, 79, "Midfielder"},
	{model.PositionForward, 3, 80, "Forward"},
}

// PlayerInput is a client-supplied squad member.
type PlayerInput struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Rating   int    `json:"rating"`
}

// TeamInput is a client-supplied team. Capacity 0 means model.DefaultRosterCapacity.
type TeamInput struct {
	Name     string        `json:"name"`
	City     string        `json:"city"`
	Coach    string        `json:"coach"`
	Stadium  string        `json:"stadium"`
	Capacity int           `json:"capacity"`
	Players  []PlayerInput `json:"players"`
}

type rosterService struct {
	log zerolog.Logger
}

func NewRosterService(logger zerolog.Logger) RosterService {
	l := logger.With().Str("module", "service").Str("component", "roster").Logger()
	return &rosterService{log: l}
}

// BuildTeam validates every field of in and reports all problems at once.
func (s *rosterService) BuildTeam(ctx context.Context, in TeamInput) (*model.Team, error) {
	start := time.Now()
	ferrs := validateTeamInput("", in)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("name_raw", in.Name).Interface("field_errors", ferrs).Msg("team validation failed")
		return nil, err
	}

	capacity := in.Capacity
	if capacity == 0 {
		capacity = model.DefaultRosterCapacity
	}
	team, err := model.NewTeamWithCapacity(in.Name, in.City, in.Coach, in.Stadium, capacity)
	if err != nil {
		return nil, err
	}
	for _, pin := range in.Players {
		pos, _ := model.ParsePosition(pin.Position)
		p, err := model.NewPlayer(pin.Number, pin.Name, pos, pin.Rating)
		if err != nil {
			return nil, err
		}
		if err := team.AddPlayer(p); err != nil {
			return nil, err
		}
	}
	s.log.Debug().Dur("took", time.Since(start)).Str("team", team.Name).Int("players", team.Len()).Msg("team built")
	return team, nil
}

// RandomTeam builds an eleven with ratings drawn around each line's base value.
func (s *rosterService) RandomTeam(ctx context.Context, src rng.Source, name, city string) (*model.Team, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: random team needs a source", model.ErrInvalidArgument)
	}
	team, err := model.NewTeam(name, city, "Coach", "Stadium")
	if err != nil {
		return nil, err
	}
	number := 1
	for _, line := range randomLines {
		for i := 1; i <= line.count; i++ {
			pname := line.label
			if line.count > 1 {
				pname = fmt.Sprintf("%s%d", line.label, i)
			}
			rating := line.base + rng.IntRange(src, -ratingSpread, ratingSpread)
			p, err := model.NewPlayer(number, pname, line.pos, rating)
			if err != nil {
				return nil, err
			}
			if err := team.AddPlayer(p); err != nil {
				return nil, err
			}
			number++
		}
	}
	return team, nil
}

// validateTeamInput collects field errors for one team; prefix scopes field names inside a larger request.
func validateTeamInput(prefix string, in TeamInput) []FieldError {
	var ferrs []FieldError
	_, ferrs = validateName(prefix+"name", in.Name, ferrs)

	capacity := in.Capacity
	switch {
	case capacity < 0:
		ferrs = append(ferrs, FieldError{Field: prefix + "capacity", Message: "must be >= 0"})
	case capacity == 0:
		capacity = model.DefaultRosterCapacity
	}
	if len(in.Players) == 0 {
		ferrs = append(ferrs, FieldError{Field: prefix + "players", Message: "must not be empty"})
	} else if capacity > 0 && len(in.Players) > capacity {
		ferrs = append(ferrs, FieldError{Field: prefix + "players", Message: fmt.Sprintf("at most %d players", capacity)})
	}

	numbers := make(map[int]struct{}, len(in.Players))
	for i, p := range in.Players {
		field := fmt.Sprintf("%splayers[%d]", prefix, i)
		if p.Number < model.MinJerseyNumber || p.Number > model.MaxJerseyNumber {
			ferrs = append(ferrs, FieldError{Field: field + ".number", Message: fmt.Sprintf("must be between %d and %d", model.MinJerseyNumber, model.MaxJerseyNumber)})
		} else if _, dup := numbers[p.Number]; dup {
			ferrs = append(ferrs, FieldError{Field: field + ".number", Message: "duplicate jersey number"})
		}
		numbers[p.Number] = struct{}{}
		_, ferrs = validateName(field+".name", p.Name, ferrs)
		if !isValidPosition(p.Position) {
			ferrs = append(ferrs, FieldError{Field: field + ".position", Message: "must be one of GK, DEF, MID, FWD"})
		}
		if p.Rating < model.MinRating || p.Rating > model.MaxRating {
			ferrs = append(ferrs, FieldError{Field: field + ".rating", Message: fmt.Sprintf("must be between %d and %d", model.MinRating, model.MaxRating)})
		}
	}
	return ferrs
}
