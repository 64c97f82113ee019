package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/maxviazov/football-sim/internal/config"
	"github.com/maxviazov/football-sim/internal/logger"
	"github.com/maxviazov/football-sim/internal/report"
	"github.com/maxviazov/football-sim/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults and APP_* env are always applied)")
	seed := flag.Uint64("seed", 0, "random seed; 0 takes simulation.seed from config, or the clock if that is 0 too")
	teams := flag.Int("teams", 0, "teams per league (even); 0 uses the configured value")
	qualifiers := flag.Int("qualifiers", 0, "teams per league that reach the cup; 0 uses the configured value")
	verbose := flag.Bool("verbose", false, "print every matchday and cup match")
	asJSON := flag.Bool("json", false, "print the championship as JSON instead of tables")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}
	cfg.ApplyEnv()

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	roster := service.NewRosterService(appLogger)
	competitions := service.NewCompetitionService(roster, cfg.Simulation.ServiceSettings(), appLogger)

	req := service.ChampionshipRequest{
		Seed:           cfg.Simulation.Seed,
		TeamsPerLeague: *teams,
		Qualifiers:     *qualifiers,
		CupName:        cfg.Simulation.CupName,
		TopScorers:     cfg.Simulation.TopScorers,
	}
	if *seed != 0 {
		req.Seed = *seed
	}

	rep, err := competitions.RunChampionship(ctx, req)
	if err != nil {
		for _, fe := range service.FieldErrors(err) {
			appLogger.Error().Str("field", fe.Field).Msg(fe.Message)
		}
		appLogger.Fatal().Err(err).Msg("championship failed")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(rep)
	} else {
		err = report.Championship(os.Stdout, rep, *verbose)
	}
	if err != nil {
		appLogger.Fatal().Err(err).Msg("write report")
	}
	appLogger.Info().Uint64("seed", rep.Seed).Str("winner", rep.Cup.Winner).Msg("championship finished")
}
