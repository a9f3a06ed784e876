package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/emre/hardwarehub/internal/pkg/logger"
	"github.com/emre/hardwarehub/internal/server"
)

func main() {
	// .env is optional; real environments set variables directly
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
