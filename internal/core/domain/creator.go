package domain

import (
	"math/big"
	"time"
)

// Creator records the royalty terms attached by an asset's creator at first
// listing. Written at most once per asset and immutable afterwards: later
// re-listings never update it, and non-creator sellers never create one.
type Creator struct {
	AssetID     string
	Creator     string
	RoyaltyRate *big.Int
	CreatedAt   int64
}

func NewCreator(assetID, creator string, royaltyRate *big.Int) *Creator {
	return &Creator{
		AssetID:     assetID,
		Creator:     creator,
		RoyaltyRate: new(big.Int).Set(royaltyRate),
		CreatedAt:   time.Now().Unix(),
	}
}
