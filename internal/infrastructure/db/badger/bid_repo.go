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

const bidStoreDir = "bids"

type bidRepository struct {
	store *badgerhold.Store
}

func NewBidRepository(config ...interface{}) (domain.BidRepository, error) {
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
		dir = filepath.Join(baseDir, bidStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open bid store: %s", err)
	}

	return &bidRepository{store}, nil
}

func (r *bidRepository) UpsertBid(ctx context.Context, bid domain.Bid) error {
	upsertFn := func() error {
		return r.store.Upsert(bid.AssetID, bid)
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

func (r *bidRepository) GetBid(
	ctx context.Context, assetID string,
) (*domain.Bid, error) {
	var bid domain.Bid
	err := r.store.Get(assetID, &bid)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bid: %w", err)
	}
	return &bid, nil
}

func (r *bidRepository) DeleteBid(ctx context.Context, assetID string) error {
	var bid domain.Bid
	if err := r.store.Delete(assetID, &bid); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (r *bidRepository) Close() {
	// nolint:all
	r.store.Close()
}
