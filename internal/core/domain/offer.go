package domain

import (
	"encoding/json"
	"math/big"
	"time"
)

// Offer is a live sale listing for an asset at a fixed price. At most one
// offer exists per asset at any time. Once sold, the offer is terminal:
// Price is reset to zero and SoldPrice records the final sale price.
type Offer struct {
	AssetID   string
	Seller    string
	Price     *big.Int
	SoldPrice *big.Int
	Sold      bool
	CreatedAt int64
	UpdatedAt int64
}

func NewOffer(assetID, seller string, price *big.Int) *Offer {
	now := time.Now().Unix()
	return &Offer{
		AssetID:   assetID,
		Seller:    seller,
		Price:     new(big.Int).Set(price),
		SoldPrice: new(big.Int),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (o Offer) String() string {
	// nolint
	b, _ := json.MarshalIndent(o, "", "  ")
	return string(b)
}

func (o Offer) IsLive() bool {
	return !o.Sold && o.Price != nil && o.Price.Sign() > 0
}

// MarkSold transitions the offer to its terminal state.
func (o *Offer) MarkSold() {
	o.SoldPrice = o.Price
	o.Price = new(big.Int)
	o.Sold = true
	o.UpdatedAt = time.Now().Unix()
}
