package events

import (
	"context"
	"testing"
	"time"

	"vaultrush/models"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeArtifactDropped, func(ctx context.Context, event Event) {
		received <- event
	})

	dropped := ArtifactDroppedEvent{OwnerID: 111, Name: "Test Relic", Rarity: models.RarityRare}
	bus.Emit(context.Background(), dropped)

	select {
	case event := <-received:
		assert.Equal(t, dropped, event)
	case <-time.After(time.Second):
		t.Fatal("handler was not invoked")
	}
}

func TestBus_EmitSkipsOtherTypes(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeAuctionSettled, func(ctx context.Context, event Event) {
		received <- event
	})

	bus.Emit(context.Background(), LedgerRecordedEvent{AccountID: 111, Amount: 100})

	select {
	case <-received:
		t.Fatal("handler fired for an unrelated event type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTransactionalBus_FlushAfterCommit(t *testing.T) {
	real := NewBus()
	received := make(chan Event, 2)
	real.Subscribe(EventTypeLedgerRecorded, func(ctx context.Context, event Event) {
		received <- event
	})

	txBus := NewTransactionalBus(real)
	txBus.Publish(LedgerRecordedEvent{AccountID: 111, Amount: 100})
	txBus.Publish(LedgerRecordedEvent{AccountID: 222, Amount: -50})

	// Nothing reaches subscribers until the flush
	select {
	case <-received:
		t.Fatal("event leaked before flush")
	case <-time.After(50 * time.Millisecond):
	}

	assert.NoError(t, txBus.Flush(context.Background()))

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(time.Second):
			t.Fatal("flushed event never arrived")
		}
	}
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	real := NewBus()
	received := make(chan Event, 1)
	real.Subscribe(EventTypeLedgerRecorded, func(ctx context.Context, event Event) {
		received <- event
	})

	txBus := NewTransactionalBus(real)
	txBus.Publish(LedgerRecordedEvent{AccountID: 111, Amount: 100})
	txBus.Discard()

	assert.NoError(t, txBus.Flush(context.Background()))

	select {
	case <-received:
		t.Fatal("discarded event was emitted")
	case <-time.After(50 * time.Millisecond):
	}
}
