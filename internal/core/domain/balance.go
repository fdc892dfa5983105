package domain

import (
	"errors"
	"math/big"
)

// PlatformAccount is the reserved internal account holding accrued platform
// fees. It is not a caller address; withdrawals from it are owner-gated.
const PlatformAccount = "__platform__"

// ErrInsufficientBalance is returned by BalanceRepository.Debit when the
// debit would drive the balance negative. Balances are unsigned and must
// never go below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Balance is an account's internally tracked, withdrawable credit held in
// escrow by the marketplace.
type Balance struct {
	Account   string
	Amount    *big.Int
	UpdatedAt int64
}
