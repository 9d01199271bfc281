// main.go
package main

import (
	"log"

	"sweet-shop/cmd"
	"sweet-shop/internal/data/repository"
	"sweet-shop/internal/mail"
	"sweet-shop/internal/wire"
	"sweet-shop/pkg/database"
	"sweet-shop/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Outbound mail is optional; without SMTP the confirmation token is
	// logged instead of sent
	var mailer mail.Mailer
	if config.Email.Host != "" {
		mailer = mail.NewSMTPMailer(config.Email)
		logger.Info("SMTP mailer configured", zap.String("host", config.Email.Host))
	} else {
		logger.Warn("SMTP not configured, confirmation emails will be logged only")
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, mailer, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
