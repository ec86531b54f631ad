package main

import (
	"context"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/yigit/academictwin/internal/pkg/logger"
	"github.com/yigit/academictwin/internal/server"
)

// @title AcademicTwin API
// @version 1.0
// @description Semester simulation and schedule optimization for students

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug().Msgf(format, args...)
	})); err != nil {
		logger.Warn().Err(err).Msg("Failed to set GOMAXPROCS")
	}

	ctx := context.Background()

	srv, err := server.NewServer(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
