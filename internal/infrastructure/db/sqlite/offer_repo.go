package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mercatohq/marketd/internal/core/domain"
)

type offerRepository struct {
	db *sql.DB
}

func NewOfferRepository(config ...interface{}) (domain.OfferRepository, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config: expected 1 argument, got %d", len(config))
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf(
			"cannot open offer repository: expected *sql.DB but got %T", config[0],
		)
	}

	return &offerRepository{db: db}, nil
}

func (r *offerRepository) AddOffer(ctx context.Context, offer domain.Offer) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO offer (asset_id, seller, price, sold_price, sold, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		offer.AssetID, offer.Seller, offer.Price.String(), offer.SoldPrice.String(),
		offer.Sold, offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add offer: %w", err)
	}
	return nil
}

func (r *offerRepository) GetOffer(
	ctx context.Context, assetID string,
) (*domain.Offer, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT asset_id, seller, price, sold_price, sold, created_at, updated_at
		 FROM offer WHERE asset_id = ?`,
		assetID,
	)
	offer, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

func (r *offerRepository) UpdateOffer(ctx context.Context, offer domain.Offer) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO offer (asset_id, seller, price, sold_price, sold, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(asset_id) DO UPDATE SET
		   seller = excluded.seller,
		   price = excluded.price,
		   sold_price = excluded.sold_price,
		   sold = excluded.sold,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		offer.AssetID, offer.Seller, offer.Price.String(), offer.SoldPrice.String(),
		offer.Sold, offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	return nil
}

func (r *offerRepository) DeleteOffer(ctx context.Context, assetID string) error {
	if _, err := r.db.ExecContext(
		ctx, `DELETE FROM offer WHERE asset_id = ?`, assetID,
	); err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}

func (r *offerRepository) GetAllOffers(ctx context.Context) ([]domain.Offer, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT asset_id, seller, price, sold_price, sold, created_at, updated_at
		 FROM offer ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	// nolint
	defer rows.Close()

	offers := make([]domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, *offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}
	return offers, nil
}

func (r *offerRepository) Close() {
	_ = r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (*domain.Offer, error) {
	var offer domain.Offer
	var price, soldPrice string
	if err := row.Scan(
		&offer.AssetID, &offer.Seller, &price, &soldPrice,
		&offer.Sold, &offer.CreatedAt, &offer.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if offer.Price, err = parseAmount(price); err != nil {
		return nil, err
	}
	if offer.SoldPrice, err = parseAmount(soldPrice); err != nil {
		return nil, err
	}
	return &offer, nil
}
