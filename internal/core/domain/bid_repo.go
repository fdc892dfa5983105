package domain

import "context"

type BidRepository interface {
	UpsertBid(ctx context.Context, bid Bid) error
	GetBid(ctx context.Context, assetID string) (*Bid, error)
	DeleteBid(ctx context.Context, assetID string) error
	Close()
}
