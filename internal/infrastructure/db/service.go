package db

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/mercatohq/marketd/internal/core/ports"
	badgerdb "github.com/mercatohq/marketd/internal/infrastructure/db/badger"
	sqlitedb "github.com/mercatohq/marketd/internal/infrastructure/db/sqlite"
	watermilldb "github.com/mercatohq/marketd/internal/infrastructure/db/watermill"
)

//go:embed sqlite/migration/*
var migrations embed.FS

var (
	offerStoreTypes = map[string]func(...interface{}) (domain.OfferRepository, error){
		"badger": badgerdb.NewOfferRepository,
		"sqlite": sqlitedb.NewOfferRepository,
	}
	bidStoreTypes = map[string]func(...interface{}) (domain.BidRepository, error){
		"badger": badgerdb.NewBidRepository,
		"sqlite": sqlitedb.NewBidRepository,
	}
	creatorStoreTypes = map[string]func(...interface{}) (domain.CreatorRepository, error){
		"badger": badgerdb.NewCreatorRepository,
		"sqlite": sqlitedb.NewCreatorRepository,
	}
	balanceStoreTypes = map[string]func(...interface{}) (domain.BalanceRepository, error){
		"badger": badgerdb.NewBalanceRepository,
		"sqlite": sqlitedb.NewBalanceRepository,
	}
	settingsStoreTypes = map[string]func(...interface{}) (domain.SettingsRepository, error){
		"badger": badgerdb.NewSettingsRepository,
		"sqlite": sqlitedb.NewSettingsRepository,
	}
)

const (
	sqliteDbFile = "sqlite.db"
)

type ServiceConfig struct {
	EventStoreType string
	DataStoreType  string

	EventStoreConfig []interface{}
	DataStoreConfig  []interface{}
}

type service struct {
	eventStore    domain.EventRepository
	offerStore    domain.OfferRepository
	bidStore      domain.BidRepository
	creatorStore  domain.CreatorRepository
	balanceStore  domain.BalanceRepository
	settingsStore domain.SettingsRepository
}

func NewService(config ServiceConfig) (ports.RepoManager, error) {
	offerStoreFactory, ok := offerStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}
	bidStoreFactory, ok := bidStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}
	creatorStoreFactory, ok := creatorStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}
	balanceStoreFactory, ok := balanceStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}
	settingsStoreFactory, ok := settingsStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}

	var eventStore domain.EventRepository
	var offerStore domain.OfferRepository
	var bidStore domain.BidRepository
	var creatorStore domain.CreatorRepository
	var balanceStore domain.BalanceRepository
	var settingsStore domain.SettingsRepository
	var err error

	switch config.EventStoreType {
	case "watermill":
		pubsub := gochannel.NewGoChannel(
			gochannel.Config{}, watermill.NopLogger{},
		)
		eventStore = watermilldb.NewWatermillEventRepository(pubsub)
	default:
		return nil, fmt.Errorf("unknown event store db type")
	}

	switch config.DataStoreType {
	case "badger":
		offerStore, err = offerStoreFactory(config.DataStoreConfig...)
		if err != nil {
			return nil, fmt.Errorf("failed to open offer store: %s", err)
		}
		bidStore, err = bidStoreFactory(config.DataStoreConfig...)
		if err != nil {
			return nil, fmt.Errorf("failed to open bid store: %s", err)
		}
		creatorStore, err = creatorStoreFactory(config.DataStoreConfig...)
		if err != nil {
			return nil, fmt.Errorf("failed to open creator store: %s", err)
		}
		balanceStore, err = balanceStoreFactory(config.DataStoreConfig...)
		if err != nil {
			return nil, fmt.Errorf("failed to open balance store: %s", err)
		}
		settingsStore, err = settingsStoreFactory(config.DataStoreConfig...)
		if err != nil {
			return nil, fmt.Errorf("failed to open settings store: %s", err)
		}

	case "sqlite":
		if len(config.DataStoreConfig) != 1 {
			return nil, fmt.Errorf("invalid data store config")
		}

		baseDir, ok := config.DataStoreConfig[0].(string)
		if !ok {
			return nil, fmt.Errorf("invalid base directory")
		}

		dbFile := filepath.Join(baseDir, sqliteDbFile)
		db, err := sqlitedb.OpenDb(dbFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %s", err)
		}

		driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to init driver: %s", err)
		}

		source, err := iofs.New(migrations, "sqlite/migration")
		if err != nil {
			return nil, fmt.Errorf("failed to embed migrations: %s", err)
		}

		m, err := migrate.NewWithInstance("iofs", source, "marketdb", driver)
		if err != nil {
			return nil, fmt.Errorf("failed to create migration instance: %s", err)
		}

		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, fmt.Errorf("failed to run migrations: %s", err)
		}

		offerStore, err = offerStoreFactory(db)
		if err != nil {
			return nil, fmt.Errorf("failed to open offer store: %s", err)
		}
		bidStore, err = bidStoreFactory(db)
		if err != nil {
			return nil, fmt.Errorf("failed to open bid store: %s", err)
		}
		creatorStore, err = creatorStoreFactory(db)
		if err != nil {
			return nil, fmt.Errorf("failed to open creator store: %s", err)
		}
		balanceStore, err = balanceStoreFactory(db)
		if err != nil {
			return nil, fmt.Errorf("failed to open balance store: %s", err)
		}
		settingsStore, err = settingsStoreFactory(db)
		if err != nil {
			return nil, fmt.Errorf("failed to open settings store: %s", err)
		}
	}

	return &service{
		eventStore:    eventStore,
		offerStore:    offerStore,
		bidStore:      bidStore,
		creatorStore:  creatorStore,
		balanceStore:  balanceStore,
		settingsStore: settingsStore,
	}, nil
}

func (s *service) Events() domain.EventRepository {
	return s.eventStore
}

func (s *service) Offers() domain.OfferRepository {
	return s.offerStore
}

func (s *service) Bids() domain.BidRepository {
	return s.bidStore
}

func (s *service) Creators() domain.CreatorRepository {
	return s.creatorStore
}

func (s *service) Balances() domain.BalanceRepository {
	return s.balanceStore
}

func (s *service) Settings() domain.SettingsRepository {
	return s.settingsStore
}

func (s *service) Close() {
	s.eventStore.Close()
	s.offerStore.Close()
	s.bidStore.Close()
	s.creatorStore.Close()
	s.balanceStore.Close()
	s.settingsStore.Close()
}
