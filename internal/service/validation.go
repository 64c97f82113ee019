package service

import (
	"fmt"
	"strings"

	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/tournament"
)

// Request limits enforced before any simulation runs.
const (
	MaxNameLength     = 60
	MaxTeamsPerLeague = 40
	MaxLeagues        = 12
)

func isValidPosition(pos string) bool {
	_, err := model.ParsePosition(pos)
	return err == nil
}

// validateName appends a field error for an empty or oversized name and returns the trimmed value.
func validateName(field, name string, ferrs []FieldError) (string, []FieldError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return name, append(ferrs, FieldError{Field: field, Message: "must not be empty"})
	}
	if ln := len([]rune(name)); ln > MaxNameLength {
		return name, append(ferrs, FieldError{Field: field, Message: fmt.Sprintf("length must be <= %d", MaxNameLength)})
	}
	return name, ferrs
}

// validateTeamInputs checks explicit teams against a random-team count and the competition bounds.
func validateTeamInputs(field string, teams []TeamInput, random, min, max int, ferrs []FieldError) []FieldError {
	if len(teams) > 0 && random > 0 {
		return append(ferrs, FieldError{Field: field, Message: "use either explicit teams or random_teams, not both"})
	}
	n := len(teams)
	if n == 0 {
		n = random
	}
	if n < min || n > max {
		return append(ferrs, FieldError{Field: field, Message: fmt.Sprintf("team count must be between %d and %d", min, max)})
	}
	seen := make(map[string]struct{}, len(teams))
	for i, t := range teams {
		name := strings.TrimSpace(t.Name)
		if _, dup := seen[name]; dup && name != "" {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("%s[%d].name", field, i), Message: "duplicate team name"})
		}
		seen[name] = struct{}{}
	}
	return ferrs
}

func validateCupSize(field string, n int, ferrs []FieldError) []FieldError {
	if n < 2 || n > tournament.MaxTeams {
		return append(ferrs, FieldError{Field: field, Message: fmt.Sprintf("cup needs between 2 and %d teams, got %d", tournament.MaxTeams, n)})
	}
	return ferrs
}
