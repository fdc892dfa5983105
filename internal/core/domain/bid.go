package domain

import (
	"math/big"
	"time"
)

// Bid is the single outstanding proposal for an asset, backed by funds the
// bidder already deposited into their ledger balance. A new bid overwrites
// the slot; the displaced bidder's deposit stays in their balance and must
// be withdrawn explicitly.
type Bid struct {
	AssetID    string
	Bidder     string
	OfferPrice *big.Int
	Active     bool
	CreatedAt  int64
}

func NewBid(assetID, bidder string, offerPrice *big.Int) *Bid {
	return &Bid{
		AssetID:    assetID,
		Bidder:     bidder,
		OfferPrice: new(big.Int).Set(offerPrice),
		Active:     true,
		CreatedAt:  time.Now().Unix(),
	}
}
