package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/emre/hardwarehub/internal/bootstrap"
	"github.com/emre/hardwarehub/internal/seed"
)

func main() {
	profiles := flag.Int("profiles", 10, "number of demo profiles to create")
	comments := flag.Int("comments", 30, "number of demo comments to post")
	flag.Parse()

	_ = godotenv.Load()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		os.Exit(1)
	}
	deps := bootstrap.BuildDependencies(cfg, lgr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := seed.Run(ctx, deps.Gateway, seed.Options{Profiles: *profiles, Comments: *comments}, lgr); err != nil {
		lgr.Error().Err(err).Msg("Seeding failed")
		os.Exit(1)
	}

	lgr.Info().Msg("Seeding complete")
}
