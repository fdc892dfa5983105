package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const balanceStoreDir = "balances"

type balanceRepository struct {
	store *badgerhold.Store
}

func NewBalanceRepository(config ...interface{}) (domain.BalanceRepository, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}
	var logger badger.Logger
	if config[1] != nil {
		logger, ok = config[1].(badger.Logger)
		if !ok {
			return nil, fmt.Errorf("invalid logger")
		}
	}

	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, balanceStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open balance store: %s", err)
	}

	return &balanceRepository{store}, nil
}

func (r *balanceRepository) Credit(
	ctx context.Context, account string, amount *big.Int,
) (*big.Int, error) {
	balance, err := r.get(account)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		balance = &domain.Balance{Account: account, Amount: new(big.Int)}
	}
	balance.Amount = new(big.Int).Add(balance.Amount, amount)
	balance.UpdatedAt = time.Now().Unix()

	if err := r.upsert(*balance); err != nil {
		return nil, err
	}
	return new(big.Int).Set(balance.Amount), nil
}

func (r *balanceRepository) Debit(
	ctx context.Context, account string, amount *big.Int,
) (*big.Int, error) {
	balance, err := r.get(account)
	if err != nil {
		return nil, err
	}
	if balance == nil || balance.Amount.Cmp(amount) < 0 {
		return nil, domain.ErrInsufficientBalance
	}
	balance.Amount = new(big.Int).Sub(balance.Amount, amount)
	balance.UpdatedAt = time.Now().Unix()

	if err := r.upsert(*balance); err != nil {
		return nil, err
	}
	return new(big.Int).Set(balance.Amount), nil
}

func (r *balanceRepository) GetBalance(
	ctx context.Context, account string,
) (*domain.Balance, error) {
	return r.get(account)
}

func (r *balanceRepository) GetAllBalances(
	ctx context.Context,
) ([]domain.Balance, error) {
	var balances []domain.Balance
	if err := r.store.Find(&balances, nil); err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return balances, nil
}

func (r *balanceRepository) TotalHeld(ctx context.Context) (*big.Int, error) {
	balances, err := r.GetAllBalances(ctx)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for _, balance := range balances {
		total.Add(total, balance.Amount)
	}
	return total, nil
}

func (r *balanceRepository) Close() {
	// nolint:all
	r.store.Close()
}

func (r *balanceRepository) get(account string) (*domain.Balance, error) {
	var balance domain.Balance
	err := r.store.Get(account, &balance)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &balance, nil
}

func (r *balanceRepository) upsert(balance domain.Balance) error {
	upsertFn := func() error {
		return r.store.Upsert(balance.Account, balance)
	}
	if err := upsertFn(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			attempts := 1
			for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
				time.Sleep(100 * time.Millisecond)
				err = upsertFn()
				attempts++
			}
		}
		return err
	}
	return nil
}
