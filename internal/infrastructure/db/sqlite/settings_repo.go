package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mercatohq/marketd/internal/core/domain"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(config ...interface{}) (domain.SettingsRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open settings repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &settingsRepository{db: db}, nil
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT owner, registry_address, market_address, platform_fee_rate, updated_at
		 FROM settings WHERE id = 1`,
	)

	var settings domain.Settings
	var feeRate string
	var updatedAt int64
	err := row.Scan(
		&settings.Owner, &settings.RegistryAddress, &settings.MarketAddress,
		&feeRate, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.PlatformFeeRate, err = parseAmount(feeRate); err != nil {
		return nil, err
	}
	settings.UpdatedAt = time.Unix(updatedAt, 0)
	return &settings, nil
}

func (r *settingsRepository) Upsert(
	ctx context.Context, settings domain.Settings,
) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO settings (id, owner, registry_address, market_address, platform_fee_rate, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   owner = excluded.owner,
		   registry_address = excluded.registry_address,
		   market_address = excluded.market_address,
		   platform_fee_rate = excluded.platform_fee_rate,
		   updated_at = excluded.updated_at`,
		settings.Owner, settings.RegistryAddress, settings.MarketAddress,
		settings.PlatformFeeRate.String(), settings.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}
	return nil
}

func (r *settingsRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	return nil
}

func (r *settingsRepository) Close() {
	_ = r.db.Close()
}
