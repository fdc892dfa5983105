package domain

import "math/big"

// Unit is the number of base units in one whole unit of value.
var Unit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// rateDivisor converts a scaled percentage rate into a per-whole-unit
// multiplier: a rate of 10*10^18 (10%) divided by 100 yields 10^17 base units
// charged per whole unit of price.
var rateDivisor = big.NewInt(100)

// FeeAmount computes the fee owed on price at the given scaled rate.
// Both divisions truncate: prices below one whole unit always yield a zero
// fee, and fractional fee amounts round down.
func FeeAmount(price, rate *big.Int) *big.Int {
	if price == nil || rate == nil {
		return new(big.Int)
	}
	wholeUnits := new(big.Int).Quo(price, Unit)
	perUnit := new(big.Int).Quo(rate, rateDivisor)
	return wholeUnits.Mul(wholeUnits, perUnit)
}

// FeeApplies reports whether a computed fee can be deducted from price.
// A fee of zero is skipped, and a fee that would consume the full price
// (or more) is skipped rather than leaving the seller with nothing.
func FeeApplies(fee, price *big.Int) bool {
	if fee == nil || price == nil {
		return false
	}
	return fee.Sign() > 0 && fee.Cmp(price) < 0
}
