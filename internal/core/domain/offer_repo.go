package domain

import "context"

type OfferRepository interface {
	AddOffer(ctx context.Context, offer Offer) error
	GetOffer(ctx context.Context, assetID string) (*Offer, error)
	UpdateOffer(ctx context.Context, offer Offer) error
	DeleteOffer(ctx context.Context, assetID string) error
	GetAllOffers(ctx context.Context) ([]Offer, error)
	Close()
}
