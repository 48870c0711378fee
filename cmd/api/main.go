package main

import (
	"os"

	"github.com/gradesphere/gradesphere/internal/pkg/logger"
	"github.com/gradesphere/gradesphere/internal/server"
)

// @title GradeSphere API
// @version 1.0
// @description Student, course and grade management backend

// @host localhost:8010
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provider session token or student JWT

func main() {
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
