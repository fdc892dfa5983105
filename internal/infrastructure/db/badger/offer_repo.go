package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const offerStoreDir = "offers"

type offerRepository struct {
	store *badgerhold.Store
}

func NewOfferRepository(config ...interface{}) (domain.OfferRepository, error) {
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
		dir = filepath.Join(baseDir, offerStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open offer store: %s", err)
	}

	return &offerRepository{store}, nil
}

func (r *offerRepository) AddOffer(ctx context.Context, offer domain.Offer) error {
	insertFn := func() error {
		return r.store.Insert(offer.AssetID, offer)
	}
	if err := insertFn(); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf("offer for asset %s already exists", offer.AssetID)
		}
		if errors.Is(err, badger.ErrConflict) {
			attempts := 1
			for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
				time.Sleep(100 * time.Millisecond)
				err = insertFn()
				attempts++
			}
		}
		return err
	}
	return nil
}

func (r *offerRepository) GetOffer(
	ctx context.Context, assetID string,
) (*domain.Offer, error) {
	var offer domain.Offer
	err := r.store.Get(assetID, &offer)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return &offer, nil
}

func (r *offerRepository) UpdateOffer(ctx context.Context, offer domain.Offer) error {
	upsertFn := func() error {
		return r.store.Upsert(offer.AssetID, offer)
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

func (r *offerRepository) DeleteOffer(ctx context.Context, assetID string) error {
	var offer domain.Offer
	if err := r.store.Delete(assetID, &offer); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (r *offerRepository) GetAllOffers(ctx context.Context) ([]domain.Offer, error) {
	var offers []domain.Offer
	if err := r.store.Find(&offers, nil); err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (r *offerRepository) Close() {
	// nolint:all
	r.store.Close()
}
