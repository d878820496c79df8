package bot

import (
	"testing"

	"vaultrush/events"
	"vaultrush/models"

	"github.com/stretchr/testify/assert"
)

func TestAnnouncementMessage(t *testing.T) {
	t.Run("artifact drop", func(t *testing.T) {
		msg := announcementMessage(events.ArtifactDroppedEvent{
			OwnerID: 111,
			Name:    "Golden Reactor",
			Rarity:  models.RarityLegendary,
		})
		assert.Equal(t, "<@111> found a Legendary artifact: **Golden Reactor**", msg)
	})

	t.Run("auction with winner", func(t *testing.T) {
		winner := int64(222)
		msg := announcementMessage(events.AuctionSettledEvent{
			AuctionID: 5,
			WinnerID:  &winner,
			FinalBid:  800,
		})
		assert.Equal(t, "Auction #5 sold to <@222> for 800 coins", msg)
	})

	t.Run("auction without bids", func(t *testing.T) {
		msg := announcementMessage(events.AuctionSettledEvent{AuctionID: 6})
		assert.Equal(t, "Auction #6 ended with no bids", msg)
	})

	t.Run("golden hour", func(t *testing.T) {
		msg := announcementMessage(events.EventStartedEvent{
			EventType:  models.EventGoldenHour,
			Multiplier: 2.0,
		})
		assert.Equal(t, "A golden hour has begun! Vault collections pay x2", msg)
	})

	t.Run("artifact storm", func(t *testing.T) {
		msg := announcementMessage(events.EventStartedEvent{EventType: models.EventArtifactStorm})
		assert.NotEmpty(t, msg)
	})

	t.Run("ledger entries are not announced", func(t *testing.T) {
		msg := announcementMessage(events.LedgerRecordedEvent{AccountID: 111, Amount: 100})
		assert.Empty(t, msg)
	})
}
