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

const creatorStoreDir = "creators"

type creatorRepository struct {
	store *badgerhold.Store
}

func NewCreatorRepository(config ...interface{}) (domain.CreatorRepository, error) {
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
		dir = filepath.Join(baseDir, creatorStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open creator store: %s", err)
	}

	return &creatorRepository{store}, nil
}

// AddCreator writes the royalty record for an asset. The record is
// insert-only: a second write for the same asset fails.
func (r *creatorRepository) AddCreator(
	ctx context.Context, creator domain.Creator,
) error {
	insertFn := func() error {
		return r.store.Insert(creator.AssetID, creator)
	}
	if err := insertFn(); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf("creator record for asset %s already exists", creator.AssetID)
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

func (r *creatorRepository) GetCreator(
	ctx context.Context, assetID string,
) (*domain.Creator, error) {
	var creator domain.Creator
	err := r.store.Get(assetID, &creator)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator record: %w", err)
	}
	return &creator, nil
}

func (r *creatorRepository) Close() {
	// nolint:all
	r.store.Close()
}
