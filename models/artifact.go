package models

import "time"

// Rarity is the ordered artifact rarity tier.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// Order returns the rarity's position in the Common < Rare < Epic < Legendary
// ordering, or -1 for an unknown value.
func (r Rarity) Order() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityRare:
		return 1
	case RarityEpic:
		return 2
	case RarityLegendary:
		return 3
	}
	return -1
}

// Valid reports whether the rarity is one of the known tiers
func (r Rarity) Valid() bool {
	return r.Order() >= 0
}

// BonusKind is the passive effect an artifact grants its owner.
type BonusKind string

const (
	// BonusKindCoinRate scales the vault's effective hourly rate.
	BonusKindCoinRate BonusKind = "coin_rate"
	// BonusKindSpeed exists on dropped artifacts but does not enter the
	// accrual formula; only the vault speed level does.
	BonusKindSpeed BonusKind = "speed"
	// BonusKindLuck raises the collect-time artifact drop chance.
	BonusKindLuck BonusKind = "luck"
)

// Valid reports whether the bonus kind is known
func (k BonusKind) Valid() bool {
	return k == BonusKindCoinRate || k == BonusKindSpeed || k == BonusKindLuck
}

// Artifact is an owned collectible granting a passive bonus. Ownership moves
// on auction settlement; nothing else mutates an artifact after creation.
type Artifact struct {
	ID           int64     `db:"id"`
	OwnerID      int64     `db:"owner_id"`
	Name         string    `db:"name"`
	Rarity       Rarity    `db:"rarity"`
	BonusKind    BonusKind `db:"bonus_kind"`
	BonusValue   float64   `db:"bonus_value"`
	Description  string    `db:"description"`
	AcquiredFrom string    `db:"acquired_from"`
	CreatedAt    time.Time `db:"created_at"`
}
