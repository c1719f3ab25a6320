package main

import (
	"os"

	"github.com/yigit/coursequest/internal/pkg/logger"
	"github.com/yigit/coursequest/internal/server"
)

// @title CourseQuest API
// @version 1.0
// @description Course catalogue search, comparison, free-text questions and CSV/XLSX ingest

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey IngestToken
// @in header
// @name x-ingest-token

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
