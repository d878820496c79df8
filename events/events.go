package events

import (
	"context"
	"sync"

	"vaultrush/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeLedgerRecorded  EventType = "ledger_recorded"
	EventTypeAccountCreated  EventType = "account_created"
	EventTypeArtifactDropped EventType = "artifact_dropped"
	EventTypeAuctionSettled  EventType = "auction_settled"
	EventTypeWarFinalized    EventType = "war_finalized"
	EventTypeEventStarted    EventType = "event_started"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// LedgerRecordedEvent represents a committed balance mutation
type LedgerRecordedEvent struct {
	AccountID       int64
	TransactionType models.TransactionType
	Amount          int64
	NewBalance      int64
}

func (e LedgerRecordedEvent) Type() EventType {
	return EventTypeLedgerRecorded
}

// AccountCreatedEvent represents a new account creation
type AccountCreatedEvent struct {
	DiscordID      int64
	Username       string
	InitialBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// ArtifactDroppedEvent represents an artifact awarded to an account
type ArtifactDroppedEvent struct {
	OwnerID    int64
	ArtifactID int64
	Name       string
	Rarity     models.Rarity
	Source     string
}

func (e ArtifactDroppedEvent) Type() EventType {
	return EventTypeArtifactDropped
}

// AuctionSettledEvent represents an auction that reached its end time
type AuctionSettledEvent struct {
	AuctionID  int64
	SellerID   int64
	WinnerID   *int64
	FinalBid   int64
	ArtifactID int64
}

func (e AuctionSettledEvent) Type() EventType {
	return EventTypeAuctionSettled
}

// WarFinalizedEvent represents a completed weekly vault war
type WarFinalizedEvent struct {
	WeekNumber     int
	WinnerGuilds   []int64
	CoinsPerWinner int64
}

func (e WarFinalizedEvent) Type() EventType {
	return EventTypeWarFinalized
}

// EventStartedEvent represents a server-wide timed event going live
type EventStartedEvent struct {
	EventID    int64
	EventType  models.EventType
	Multiplier float64
}

func (e EventStartedEvent) Type() EventType {
	return EventTypeEventStarted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus after a successful commit.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful DB commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Use background context for event emission so handlers outlive the
	// transaction context.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard is called after db rollback or to clear state.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
