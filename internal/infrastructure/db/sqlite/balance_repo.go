package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/mercatohq/marketd/internal/core/domain"
)

type balanceRepository struct {
	db *sql.DB
}

func NewBalanceRepository(config ...interface{}) (domain.BalanceRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open balance repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &balanceRepository{db: db}, nil
}

func (r *balanceRepository) Credit(
	ctx context.Context, account string, amount *big.Int,
) (*big.Int, error) {
	return r.apply(ctx, account, amount, false)
}

func (r *balanceRepository) Debit(
	ctx context.Context, account string, amount *big.Int,
) (*big.Int, error) {
	return r.apply(ctx, account, amount, true)
}

// apply adjusts the account balance inside a transaction so the
// read-modify-write is atomic against other connections.
func (r *balanceRepository) apply(
	ctx context.Context, account string, amount *big.Int, debit bool,
) (*big.Int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin balance tx: %w", err)
	}
	// nolint
	defer tx.Rollback()

	current := new(big.Int)
	var raw string
	err = tx.QueryRowContext(
		ctx, `SELECT amount FROM balance WHERE account = ?`, account,
	).Scan(&raw)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	if err == nil {
		if current, err = parseAmount(raw); err != nil {
			return nil, err
		}
	}

	if debit {
		if current.Cmp(amount) < 0 {
			return nil, domain.ErrInsufficientBalance
		}
		current = new(big.Int).Sub(current, amount)
	} else {
		current = new(big.Int).Add(current, amount)
	}

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO balance (account, amount, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(account) DO UPDATE SET
		   amount = excluded.amount,
		   updated_at = excluded.updated_at`,
		account, current.String(), time.Now().Unix(),
	); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit balance tx: %w", err)
	}
	return current, nil
}

func (r *balanceRepository) GetBalance(
	ctx context.Context, account string,
) (*domain.Balance, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT account, amount, updated_at FROM balance WHERE account = ?`,
		account,
	)

	var balance domain.Balance
	var amount string
	err := row.Scan(&balance.Account, &amount, &balance.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	if balance.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (r *balanceRepository) GetAllBalances(
	ctx context.Context,
) ([]domain.Balance, error) {
	rows, err := r.db.QueryContext(
		ctx, `SELECT account, amount, updated_at FROM balance`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	// nolint
	defer rows.Close()

	balances := make([]domain.Balance, 0)
	for rows.Next() {
		var balance domain.Balance
		var amount string
		if err := rows.Scan(&balance.Account, &amount, &balance.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		if balance.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balances: %w", err)
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
	_ = r.db.Close()
}
