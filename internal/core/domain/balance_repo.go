package domain

import (
	"context"
	"math/big"
)

type BalanceRepository interface {
	// Credit adds amount to the account's balance, creating the record if
	// absent, and returns the new balance.
	Credit(ctx context.Context, account string, amount *big.Int) (*big.Int, error)
	// Debit subtracts amount from the account's balance and returns the new
	// balance. It fails with ErrInsufficientBalance if amount exceeds the
	// current balance.
	Debit(ctx context.Context, account string, amount *big.Int) (*big.Int, error)
	GetBalance(ctx context.Context, account string) (*Balance, error)
	GetAllBalances(ctx context.Context) ([]Balance, error)
	// TotalHeld returns the sum of all account balances, platform pool
	// included.
	TotalHeld(ctx context.Context) (*big.Int, error)
	Close()
}
