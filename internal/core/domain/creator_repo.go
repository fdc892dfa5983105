package domain

import "context"

type CreatorRepository interface {
	AddCreator(ctx context.Context, creator Creator) error
	GetCreator(ctx context.Context, assetID string) (*Creator, error)
	Close()
}
