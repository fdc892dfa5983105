package domain

import (
	"math/big"
	"time"
)

// Settings holds the marketplace's administrative state: the single owner
// address gating admin operations, the address of the asset registry, the
// marketplace's own operator address, and the platform fee rate (scaled the
// same way as royalty rates, 1% = 10^18).
type Settings struct {
	Owner           string
	RegistryAddress string
	MarketAddress   string
	PlatformFeeRate *big.Int
	UpdatedAt       time.Time
}

func NewSettings(owner, registryAddress, marketAddress string, platformFeeRate *big.Int) *Settings {
	return &Settings{
		Owner:           owner,
		RegistryAddress: registryAddress,
		MarketAddress:   marketAddress,
		PlatformFeeRate: new(big.Int).Set(platformFeeRate),
	}
}
