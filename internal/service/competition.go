package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/maxviazov/football-sim/internal/league"
	"github.com/maxviazov/football-sim/internal/match"
	"github.com/maxviazov/football-sim/internal/model"
	"github.com/maxviazov/football-sim/internal/rng"
	"github.com/maxviazov/football-sim/internal/tournament"
)

const (
	// DefaultCupName is used when a championship request leaves the cup unnamed.
	DefaultCupName    = "Champions League"
	defaultTopScorers = 10
)

// LeagueSpec names one domestic league of a championship.
type LeagueSpec struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// DefaultLeagues are played when a championship request lists none.
var DefaultLeagues = []LeagueSpec{
	{Name: "La Liga", Region: "Spain"},
	{Name: "Premier League", Region: "England"},
	{Name: "Bundesliga", Region: "Germany"},
	{Name: "Serie A", Region: "Italy"},
	{Name: "Ligue 1", Region: "France"},
}

// LeagueRequest asks for one season. Either Teams or RandomTeams is set; Seed 0 picks a fresh seed.
type LeagueRequest struct {
	Name        string      `json:"name"`
	Region      string      `json:"region"`
	Seed        uint64      `json:"seed"`
	Teams       []TeamInput `json:"teams"`
	RandomTeams int         `json:"random_teams"`
	TopScorers  int         `json:"top_scorers"`
}

// TournamentRequest asks for one knockout cup.
type TournamentRequest struct {
	Name        string      `json:"name"`
	Seed        uint64      `json:"seed"`
	Teams       []TeamInput `json:"teams"`
	RandomTeams int         `json:"random_teams"`
}

// ChampionshipRequest runs several random leagues side by side and a cup among their top finishers.
// Zero values fall back to the service settings.
type ChampionshipRequest struct {
	Seed           uint64       `json:"seed"`
	Leagues        []LeagueSpec `json:"leagues"`
	TeamsPerLeague int          `json:"teams_per_league"`
	Qualifiers     int          `json:"qualifiers"`
	CupName        string       `json:"cup_name"`
	Invitees       []TeamInput  `json:"invitees"`
	TopScorers     int          `json:"top_scorers"`
}

// Settings are the service-wide simulation defaults.
type Settings struct {
	Engine           match.Config
	Clock            clockwork.Clock
	MatchdayInterval time.Duration
	TeamsPerLeague   int
	Qualifiers       int
	CupName          string
}

type competitionService struct {
	roster   RosterService
	settings Settings
	log      zerolog.Logger
}

func NewCompetitionService(roster RosterService, settings Settings, logger zerolog.Logger) CompetitionService {
	l := logger.With().Str("module", "service").Str("component", "competition").Logger()
	if settings.Clock == nil {
		settings.Clock = clockwork.NewRealClock()
	}
	if settings.TeamsPerLeague == 0 {
		settings.TeamsPerLeague = league.DefaultMaxTeams
	}
	if settings.Qualifiers == 0 {
		settings.Qualifiers = 3
	}
	if settings.CupName == "" {
		settings.CupName = DefaultCupName
	}
	return &competitionService{roster: roster, settings: settings, log: l}
}

func (s *competitionService) SimulateLeague(ctx context.Context, req LeagueRequest) (model.LeagueReport, error) {
	var ferrs []FieldError
	req.Name, ferrs = validateName("name", req.Name, ferrs)
	ferrs = append(ferrs, validateLeagueTeams(req)...)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("league request rejected")
		return model.LeagueReport{}, err
	}
	_, rep, err := s.runLeague(ctx, req)
	return rep, err
}

func (s *competitionService) SimulateTournament(ctx context.Context, req TournamentRequest) (model.TournamentReport, error) {
	var ferrs []FieldError
	req.Name, ferrs = validateName("name", req.Name, ferrs)
	ferrs = validateTeamInputs("teams", req.Teams, req.RandomTeams, 2, tournament.MaxTeams, ferrs)
	for i, t := range req.Teams {
		ferrs = append(ferrs, validateTeamInput(fmt.Sprintf("teams[%d].", i), t)...)
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("tournament request rejected")
		return model.TournamentReport{}, err
	}

	seed := rng.Seed(req.Seed)
	src := rng.New(seed)
	teams, err := s.buildTeams(ctx, src, req.Name, req.Teams, req.RandomTeams)
	if err != nil {
		return model.TournamentReport{}, err
	}
	return s.runTournament(ctx, req.Name, seed, src, teams)
}

// RunChampionship plays every league concurrently. Leagues share no teams and each owns its random source,
// so a fixed seed reproduces the same championship regardless of goroutine scheduling.
func (s *competitionService) RunChampionship(ctx context.Context, req ChampionshipRequest) (model.ChampionshipReport, error) {
	start := time.Now()
	if len(req.Leagues) == 0 {
		req.Leagues = DefaultLeagues
	}
	if req.TeamsPerLeague == 0 {
		req.TeamsPerLeague = s.settings.TeamsPerLeague
	}
	if req.Qualifiers == 0 {
		req.Qualifiers = s.settings.Qualifiers
	}
	if req.CupName == "" {
		req.CupName = s.settings.CupName
	}
	if ferrs := validateChampionship(req); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("championship request rejected")
		return model.ChampionshipReport{}, newInvalidInput(ferrs)
	}

	seed := rng.Seed(req.Seed)
	leagues := make([]*league.League, len(req.Leagues))
	reports := make([]model.LeagueReport, len(req.Leagues))

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, spec := range req.Leagues {
		p.Go(func(ctx context.Context) error {
			l, rep, err := s.runLeague(ctx, LeagueRequest{
				Name:        spec.Name,
				Region:      spec.Region,
				Seed:        seed + uint64(i+1),
				RandomTeams: req.TeamsPerLeague,
				TopScorers:  req.TopScorers,
			})
			if err != nil {
				return fmt.Errorf("league %s: %w", spec.Name, err)
			}
			leagues[i], reports[i] = l, rep
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		s.log.Error().Err(err).Msg("championship leagues failed")
		return model.ChampionshipReport{}, err
	}

	var cupTeams []*model.Team
	var qualified []string
	for _, l := range leagues {
		for _, t := range l.Top(req.Qualifiers) {
			cupTeams = append(cupTeams, t)
			qualified = append(qualified, t.Name)
		}
	}
	for _, in := range req.Invitees {
		t, err := s.roster.BuildTeam(ctx, in)
		if err != nil {
			return model.ChampionshipReport{}, err
		}
		cupTeams = append(cupTeams, t)
		qualified = append(qualified, t.Name)
	}

	cupSeed := seed + uint64(len(req.Leagues)+1)
	cup, err := s.runTournament(ctx, req.CupName, cupSeed, rng.New(cupSeed), cupTeams)
	if err != nil {
		return model.ChampionshipReport{}, err
	}
	s.log.Info().
		Dur("took", time.Since(start)).
		Uint64("seed", seed).
		Int("leagues", len(leagues)).
		Str("winner", cup.Winner).
		Msg("championship simulated")
	return model.ChampionshipReport{Seed: seed, Leagues: reports, Qualified: qualified, Cup: cup}, nil
}

// runLeague builds and plays one league season. The request must already be valid.
func (s *competitionService) runLeague(ctx context.Context, req LeagueRequest) (*league.League, model.LeagueReport, error) {
	start := time.Now()
	if req.TopScorers == 0 {
		req.TopScorers = defaultTopScorers
	}
	seed := rng.Seed(req.Seed)
	src := rng.New(seed)
	engine, err := match.NewEngine(s.settings.Engine, src, s.log)
	if err != nil {
		return nil, model.LeagueReport{}, err
	}
	teams, err := s.buildTeams(ctx, src, req.Name, req.Teams, req.RandomTeams)
	if err != nil {
		return nil, model.LeagueReport{}, err
	}

	opts := []league.Option{league.WithClock(s.settings.Clock), league.WithLogger(s.log)}
	if s.settings.MatchdayInterval > 0 {
		opts = append(opts, league.WithMatchdayInterval(s.settings.MatchdayInterval))
	}
	l, err := league.New(req.Name, req.Region, len(teams), engine, opts...)
	if err != nil {
		return nil, model.LeagueReport{}, err
	}
	for _, t := range teams {
		if err := l.AddTeam(t); err != nil {
			return nil, model.LeagueReport{}, err
		}
	}
	if err := l.SimulateSeason(ctx); err != nil {
		return nil, model.LeagueReport{}, err
	}

	s.log.Info().Dur("took", time.Since(start)).Str("league", l.Name).Uint64("seed", seed).Msg("league simulated")
	return l, model.LeagueReport{
		Name:       l.Name,
		Region:     l.Region,
		Seed:       seed,
		Standings:  l.Standings(),
		Matchdays:  l.Results(),
		TopScorers: l.TopScorers(req.TopScorers),
	}, nil
}

func (s *competitionService) runTournament(ctx context.Context, name string, seed uint64, src rng.Source, teams []*model.Team) (model.TournamentReport, error) {
	engine, err := match.NewEngine(s.settings.Engine, src, s.log)
	if err != nil {
		return model.TournamentReport{}, err
	}
	cup, err := tournament.New(name, engine, src, tournament.WithLogger(s.log))
	if err != nil {
		return model.TournamentReport{}, err
	}
	for _, t := range teams {
		if err := cup.AddTeam(t); err != nil {
			return model.TournamentReport{}, err
		}
	}
	winner, err := cup.SimulateAll(ctx)
	if err != nil {
		return model.TournamentReport{}, err
	}
	return model.TournamentReport{Name: cup.Name, Seed: seed, Rounds: cup.Rounds(), Winner: winner.Name}, nil
}

// buildTeams turns explicit inputs into teams, or generates n random ones named after the competition.
func (s *competitionService) buildTeams(ctx context.Context, src rng.Source, competition string, inputs []TeamInput, n int) ([]*model.Team, error) {
	if len(inputs) > 0 {
		teams := make([]*model.Team, 0, len(inputs))
		for _, in := range inputs {
			t, err := s.roster.BuildTeam(ctx, in)
			if err != nil {
				return nil, err
			}
			teams = append(teams, t)
		}
		return teams, nil
	}
	teams := make([]*model.Team, 0, n)
	for i := 1; i <= n; i++ {
		t, err := s.roster.RandomTeam(ctx, src, fmt.Sprintf("%s Team %d", competition, i), fmt.Sprintf("City %d", i))
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func validateLeagueTeams(req LeagueRequest) []FieldError {
	ferrs := validateTeamInputs("teams", req.Teams, req.RandomTeams, 2, MaxTeamsPerLeague, nil)
	n := len(req.Teams)
	if n == 0 {
		n = req.RandomTeams
	}
	if len(ferrs) == 0 && n%2 != 0 {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: "team count must be even"})
	}
	for i, t := range req.Teams {
		ferrs = append(ferrs, validateTeamInput(fmt.Sprintf("teams[%d].", i), t)...)
	}
	if req.TopScorers < 0 {
		ferrs = append(ferrs, FieldError{Field: "top_scorers", Message: "must be >= 0"})
	}
	return ferrs
}

func validateChampionship(req ChampionshipRequest) []FieldError {
	var ferrs []FieldError
	if len(req.Leagues) > MaxLeagues {
		ferrs = append(ferrs, FieldError{Field: "leagues", Message: fmt.Sprintf("at most %d leagues", MaxLeagues)})
	}
	seen := make(map[string]struct{}, len(req.Leagues))
	for i, spec := range req.Leagues {
		var name string
		name, ferrs = validateName(fmt.Sprintf("leagues[%d].name", i), spec.Name, ferrs)
		if _, dup := seen[name]; dup && name != "" {
			ferrs = append(ferrs, FieldError{Field: fmt.Sprintf("leagues[%d].name", i), Message: "duplicate league name"})
		}
		seen[name] = struct{}{}
	}
	switch {
	case req.TeamsPerLeague < 2 || req.TeamsPerLeague > MaxTeamsPerLeague:
		ferrs = append(ferrs, FieldError{Field: "teams_per_league", Message: fmt.Sprintf("must be between 2 and %d", MaxTeamsPerLeague)})
	case req.TeamsPerLeague%2 != 0:
		ferrs = append(ferrs, FieldError{Field: "teams_per_league", Message: "must be even"})
	}
	if req.Qualifiers < 1 || req.Qualifiers > req.TeamsPerLeague {
		ferrs = append(ferrs, FieldError{Field: "qualifiers", Message: "must be between 1 and teams_per_league"})
	}
	_, ferrs = validateName("cup_name", req.CupName, ferrs)
	for i, t := range req.Invitees {
		ferrs = append(ferrs, validateTeamInput(fmt.Sprintf("invitees[%d].", i), t)...)
	}
	ferrs = validateCupSize("qualifiers", len(req.Leagues)*req.Qualifiers+len(req.Invitees), ferrs)
	if req.TopScorers < 0 {
		ferrs = append(ferrs, FieldError{Field: "top_scorers", Message: "must be >= 0"})
	}
	return ferrs
}
