package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mercatohq/marketd/internal/core/domain"
)

type creatorRepository struct {
	db *sql.DB
}

func NewCreatorRepository(config ...interface{}) (domain.CreatorRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open creator repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &creatorRepository{db: db}, nil
}

// AddCreator is insert-only: the primary key rejects a second record for the
// same asset.
func (r *creatorRepository) AddCreator(
	ctx context.Context, creator domain.Creator,
) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO creator (asset_id, creator, royalty_rate, created_at)
		 VALUES (?, ?, ?, ?)`,
		creator.AssetID, creator.Creator, creator.RoyaltyRate.String(), creator.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add creator record: %w", err)
	}
	return nil
}

func (r *creatorRepository) GetCreator(
	ctx context.Context, assetID string,
) (*domain.Creator, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT asset_id, creator, royalty_rate, created_at
		 FROM creator WHERE asset_id = ?`,
		assetID,
	)

	var creator domain.Creator
	var royaltyRate string
	err := row.Scan(&creator.AssetID, &creator.Creator, &royaltyRate, &creator.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator record: %w", err)
	}
	if creator.RoyaltyRate, err = parseAmount(royaltyRate); err != nil {
		return nil, err
	}
	return &creator, nil
}

func (r *creatorRepository) Close() {
	_ = r.db.Close()
}
