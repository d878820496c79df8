package testutil

import (
	"time"

	"vaultrush/models"
)

// CreateTestAccount creates a test account with default values
func CreateTestAccount(discordID int64, username string) *models.Account {
	now := time.Now()
	return &models.Account{
		DiscordID:       discordID,
		Username:        username,
		Coins:           10000,
		VaultLevel:      1,
		VaultSpeedLevel: 1,
		CoinsPerHour:    100,
		LastCollection:  now,
		LastActivity:    now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CreateTestAccountWithCoins creates a test account with a specific balance
func CreateTestAccountWithCoins(discordID int64, username string, coins int64) *models.Account {
	account := CreateTestAccount(discordID, username)
	account.Coins = coins
	return account
}

// CreateTestArtifact creates a test artifact owned by the given account
func CreateTestArtifact(id, ownerID int64, rarity models.Rarity) *models.Artifact {
	return &models.Artifact{
		ID:           id,
		OwnerID:      ownerID,
		Name:         "Test Relic",
		Rarity:       rarity,
		BonusKind:    models.BonusKindCoinRate,
		BonusValue:   0.1,
		AcquiredFrom: "collect",
		CreatedAt:    time.Now(),
	}
}

// CreateTestLedgerEntry creates a test ledger entry
func CreateTestLedgerEntry(accountID int64, transactionType models.TransactionType, amount int64) *models.LedgerEntry {
	return &models.LedgerEntry{
		AccountID:       accountID,
		TransactionType: transactionType,
		Amount:          amount,
		Metadata: map[string]any{
			"test": true,
		},
		CreatedAt: time.Now(),
	}
}

// CreateTestLoan creates an active test loan
func CreateTestLoan(id, lenderID, borrowerID, principal int64, rate float64) *models.Loan {
	now := time.Now()
	return &models.Loan{
		ID:           id,
		LenderID:     lenderID,
		BorrowerID:   borrowerID,
		Principal:    principal,
		InterestRate: rate,
		TotalOwed:    int64(float64(principal) * (1 + rate)),
		Status:       models.LoanStatusActive,
		DueDate:      now.Add(7 * 24 * time.Hour),
		CreatedAt:    now,
	}
}

// CreateTestAuction creates an active test auction
func CreateTestAuction(id, sellerID, artifactID, startingBid int64, endsAt time.Time) *models.Auction {
	return &models.Auction{
		ID:          id,
		SellerID:    sellerID,
		ArtifactID:  artifactID,
		StartingBid: startingBid,
		Status:      models.AuctionStatusActive,
		EndsAt:      endsAt,
		CreatedAt:   time.Now(),
	}
}
