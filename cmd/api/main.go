package main

import (
	"os"

	"github.com/edutrack/schoolms/internal/pkg/logger"
	"github.com/edutrack/schoolms/internal/server"
)

// @title School Management API
// @version 1.0
// @description Multi-school management backend: schools, academic structure, students, teachers, guardians and voucher-based registration.

// @contact.name API Support
// @contact.email support@schoolms.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer JWT access token. Superusers pick the school with the X-School-ID header.

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
