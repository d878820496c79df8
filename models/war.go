package models

import "time"

// WarStatus is the war-entry state: active while the week runs, completed
// once settlement has assigned ranks and redistributed the pool.
type WarStatus string

const (
	WarStatusActive    WarStatus = "active"
	WarStatusCompleted WarStatus = "completed"
)

// Valid reports whether the status is a known war-entry state
func (s WarStatus) Valid() bool {
	return s == WarStatusActive || s == WarStatusCompleted
}

// WarEntry snapshots one alliance's power at war start for one week.
// Immutable once completed.
type WarEntry struct {
	ID         int64     `db:"id"`
	WeekNumber int       `db:"week_number"`
	GuildID    int64     `db:"guild_id"`
	VaultPower int64     `db:"vault_power"`
	Rank       *int      `db:"rank"`
	CoinsWon   int64     `db:"coins_won"`
	CoinsLost  int64     `db:"coins_lost"`
	Status     WarStatus `db:"status"`
	CreatedAt  time.Time `db:"created_at"`

	// Populated by joins for rankings display.
	GuildName string `db:"-"`
}

// WarResult summarizes a finalized war week
type WarResult struct {
	WeekNumber     int
	Winners        []*WarEntry
	Losers         []*WarEntry
	CoinsPerWinner int64
}
