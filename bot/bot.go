package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"vaultrush/events"
	"vaultrush/models"
	"vaultrush/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string

	// AnnounceChannelID is where notable economy moments are posted.
	// Announcements are disabled when empty.
	AnnounceChannelID string
}

// pendingTrivia is an outstanding question waiting for its answer.
type pendingTrivia struct {
	question *models.TriviaQuestion
	drawnAt  time.Time
}

type Bot struct {
	config          Config
	session         *discordgo.Session
	vaultService    service.VaultService
	gameService     service.GameService
	marketService   service.MarketService
	stockService    service.StockService
	auctionService  service.AuctionService
	loanService     service.LoanService
	allianceService service.AllianceService
	warService      service.WarService
	eventService    service.TimedEventService
	artifactService service.ArtifactService
	eventBus        *events.Bus

	triviaMu sync.Mutex
	trivia   map[int64]*pendingTrivia
}

func New(
	config Config,
	vaultService service.VaultService,
	gameService service.GameService,
	marketService service.MarketService,
	stockService service.StockService,
	auctionService service.AuctionService,
	loanService service.LoanService,
	allianceService service.AllianceService,
	warService service.WarService,
	eventService service.TimedEventService,
	artifactService service.ArtifactService,
	eventBus *events.Bus,
) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:          config,
		session:         dg,
		vaultService:    vaultService,
		gameService:     gameService,
		marketService:   marketService,
		stockService:    stockService,
		auctionService:  auctionService,
		loanService:     loanService,
		allianceService: allianceService,
		warService:      warService,
		eventService:    eventService,
		artifactService: artifactService,
		eventBus:        eventBus,
		trivia:          make(map[int64]*pendingTrivia),
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	go bot.startTriviaCleanup()

	// Announce notable economy moments when a channel is configured
	if bot.config.AnnounceChannelID != "" {
		bot.subscribeAnnouncements()
		log.Info("Economy announcements enabled")
	}

	return bot, nil
}

// subscribeAnnouncements relays artifact drops, auction settlements and
// server-wide events into the announcement channel.
func (b *Bot) subscribeAnnouncements() {
	relay := func(event events.Event) {
		if msg := announcementMessage(event); msg != "" {
			b.announce(msg)
		}
	}
	handler := func(ctx context.Context, event events.Event) { relay(event) }

	b.eventBus.Subscribe(events.EventTypeArtifactDropped, handler)
	b.eventBus.Subscribe(events.EventTypeAuctionSettled, handler)
	b.eventBus.Subscribe(events.EventTypeEventStarted, handler)
}

// announcementMessage renders the channel message for an event, or "" when
// the event is not announced.
func announcementMessage(event events.Event) string {
	switch e := event.(type) {
	case events.ArtifactDroppedEvent:
		return fmt.Sprintf("<@%d> found a %s artifact: **%s**", e.OwnerID, e.Rarity, e.Name)
	case events.AuctionSettledEvent:
		if e.WinnerID == nil {
			return fmt.Sprintf("Auction #%d ended with no bids", e.AuctionID)
		}
		return fmt.Sprintf("Auction #%d sold to <@%d> for %d coins", e.AuctionID, *e.WinnerID, e.FinalBid)
	case events.EventStartedEvent:
		switch e.EventType {
		case models.EventGoldenHour:
			return fmt.Sprintf("A golden hour has begun! Vault collections pay x%.0f", e.Multiplier)
		case models.EventArtifactStorm:
			return "An artifact storm is raging! Collect now for better drop odds"
		}
	}
	return ""
}

func (b *Bot) announce(message string) {
	if _, err := b.session.ChannelMessageSend(b.config.AnnounceChannelID, message); err != nil {
		log.Errorf("Failed to send announcement: %v", err)
	}
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// startTriviaCleanup drops questions nobody answered.
func (b *Bot) startTriviaCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		b.triviaMu.Lock()
		for id, pending := range b.trivia {
			if pending.drawnAt.Before(cutoff) {
				delete(b.trivia, id)
			}
		}
		b.triviaMu.Unlock()
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "vault":
		b.handleVaultCommand(s, i)
	case "collect":
		b.handleCollect(s, i)
	case "leaderboard":
		b.handleLeaderboard(s, i)
	case "coinflip":
		b.handleCoinFlip(s, i)
	case "dice":
		b.handleDice(s, i)
	case "blackjack":
		b.handleBlackjack(s, i)
	case "slots":
		b.handleSlots(s, i)
	case "roulette":
		b.handleRoulette(s, i)
	case "rps":
		b.handleRPS(s, i)
	case "trivia":
		b.handleTriviaCommand(s, i)
	case "lottery":
		b.handleLottery(s, i)
	case "daily":
		b.handleDaily(s, i)
	case "raid":
		b.handleRaid(s, i)
	case "crate":
		b.handleCrate(s, i)
	case "artifacts":
		b.handleArtifacts(s, i)
	case "auction":
		b.handleAuctionCommand(s, i)
	case "market":
		b.handleMarketCommand(s, i)
	case "stock":
		b.handleStockCommand(s, i)
	case "loan":
		b.handleLoanCommand(s, i)
	case "alliance":
		b.handleAllianceCommand(s, i)
	case "events":
		b.handleEvents(s, i)
	default:
		log.Warnf("Unknown command: %s", i.ApplicationCommandData().Name)
	}
}
