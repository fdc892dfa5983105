package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mercatohq/marketd/internal/core/domain"
)

type bidRepository struct {
	db *sql.DB
}

func NewBidRepository(config ...interface{}) (domain.BidRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open bid repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &bidRepository{db: db}, nil
}

func (r *bidRepository) UpsertBid(ctx context.Context, bid domain.Bid) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO bid (asset_id, bidder, offer_price, active, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(asset_id) DO UPDATE SET
		   bidder = excluded.bidder,
		   offer_price = excluded.offer_price,
		   active = excluded.active,
		   created_at = excluded.created_at`,
		bid.AssetID, bid.Bidder, bid.OfferPrice.String(), bid.Active, bid.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bid: %w", err)
	}
	return nil
}

func (r *bidRepository) GetBid(
	ctx context.Context, assetID string,
) (*domain.Bid, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT asset_id, bidder, offer_price, active, created_at
		 FROM bid WHERE asset_id = ?`,
		assetID,
	)

	var bid domain.Bid
	var offerPrice string
	err := row.Scan(&bid.AssetID, &bid.Bidder, &offerPrice, &bid.Active, &bid.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	if bid.OfferPrice, err = parseAmount(offerPrice); err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *bidRepository) DeleteBid(ctx context.Context, assetID string) error {
	if _, err := r.db.ExecContext(
		ctx, `DELETE FROM bid WHERE asset_id = ?`, assetID,
	); err != nil {
		return fmt.Errorf("failed to delete bid: %w", err)
	}
	return nil
}

func (r *bidRepository) Close() {
	_ = r.db.Close()
}
