package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"vaultrush/bot"
	"vaultrush/config"
	"vaultrush/database"
	"vaultrush/events"
	"vaultrush/obs"
	"vaultrush/repository"
	"vaultrush/scheduler"
	"vaultrush/service"
	"vaultrush/web"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting vaultrush...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize metrics registry
	obs.Init()

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	vaultService := service.NewVaultService(uowFactory)
	gameService := service.NewGameService(uowFactory)
	marketService := service.NewMarketService(uowFactory)
	stockService := service.NewStockService(uowFactory)
	auctionService := service.NewAuctionService(uowFactory)
	loanService := service.NewLoanService(uowFactory)
	allianceService := service.NewAllianceService(uowFactory)
	warService := service.NewWarService(uowFactory)
	eventService := service.NewTimedEventService(uowFactory)
	artifactService := service.NewArtifactService(uowFactory)
	statsService := service.NewStatsService(uowFactory)
	log.Println("Services initialized successfully")

	// Start the settlement scheduler
	stopScheduler := scheduler.New(auctionService, loanService, stockService, eventService, warService).Start(ctx)

	// Start the HTTP status server
	httpServer := web.New(cfg.HTTPAddr, statsService)
	go func() {
		if err := httpServer.Start(ctx); err != nil {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:             cfg.DiscordToken,
		GuildID:           cfg.GuildID,
		AnnounceChannelID: cfg.AnnounceChannelID,
	}
	discordBot, err := bot.New(botConfig, vaultService, gameService, marketService, stockService,
		auctionService, loanService, allianceService, warService, eventService, artifactService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("vaultrush is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down...")

	stopScheduler()

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
