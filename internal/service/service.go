// Package service validates simulation requests, builds rosters and runs competitions
// for both the console driver and the HTTP surface.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/rng"
)

// ErrInvalidInput marks a rejected request. Every rejected field is listed by FieldErrors.
var ErrInvalidInput = errors.New("invalid input")

// FieldError names one rejected request field, using the JSON path of the field (for example "teams[2].players[0].rating").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldSet is the error returned for a rejected request; it unwraps to ErrInvalidInput.
type fieldSet []FieldError

func (fs fieldSet) Error() string        { return fmt.Sprintf("%s: %d field(s)", ErrInvalidInput, len(fs)) }
func (fs fieldSet) Unwrap() error        { return ErrInvalidInput }
func (fs fieldSet) Fields() []FieldError { return fs }

type fieldCarrier interface{ Fields() []FieldError }

// newInvalidInput returns nil when nothing was rejected.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return fieldSet(fe)
}

// FieldErrors returns the rejected fields carried by err, or nil when err is not an invalid-input error.
func FieldErrors(err error) []FieldError {
	var fc fieldCarrier
	if !errors.Is(err, ErrInvalidInput) || !errors.As(err, &fc) {
		return nil
	}
	return fc.Fields()
}

// RosterService builds teams, either from client input or at random.
type RosterService interface {
	BuildTeam(ctx context.Context, in TeamInput) (*model.Team, error)
	RandomTeam(ctx context.Context, src rng.Source, name, city string) (*model.Team, error)
}

// CompetitionService runs isolated simulations and returns their results.
type CompetitionService interface {
	SimulateLeague(ctx context.Context, req LeagueRequest) (model.LeagueReport, error)
	SimulateTournament(ctx context.Context, req TournamentRequest) (model.TournamentReport, error)
	RunChampionship(ctx context.Context, req ChampionshipRequest) (model.ChampionshipReport, error)
}
