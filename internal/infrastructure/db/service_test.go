package db_test

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/mercatohq/marketd/internal/core/ports"
	"github.com/mercatohq/marketd/internal/infrastructure/db"
	"github.com/stretchr/testify/require"
)

var (
	ctx  = context.Background()
	unit = domain.Unit
)

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), unit)
}

func TestService(t *testing.T) {
	dbDir := t.TempDir()
	tests := []struct {
		name   string
		config db.ServiceConfig
	}{
		{
			name: "repo_manager_with_badger_stores",
			config: db.ServiceConfig{
				EventStoreType:  "watermill",
				DataStoreType:   "badger",
				DataStoreConfig: []interface{}{"", nil},
			},
		},
		{
			name: "repo_manager_with_sqlite_stores",
			config: db.ServiceConfig{
				EventStoreType:  "watermill",
				DataStoreType:   "sqlite",
				DataStoreConfig: []interface{}{dbDir},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := db.NewService(tt.config)
			require.NoError(t, err)
			require.NotNil(t, svc)

			testEventRepository(t, svc)
			testOfferRepository(t, svc)
			testBidRepository(t, svc)
			testCreatorRepository(t, svc)
			testBalanceRepository(t, svc)
			testSettingsRepository(t, svc)

			svc.Close()
		})
	}
}

func testEventRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_event_repository", func(t *testing.T) {
		wg := &sync.WaitGroup{}
		wg.Add(1)

		var got []domain.Event
		svc.Events().RegisterEventsHandler(
			domain.OfferTopic, func(events []domain.Event) {
				got = events
				wg.Done()
			},
		)
		defer svc.Events().ClearRegisteredHandlers()

		err := svc.Events().Save(ctx, domain.OfferTopic, "asset-events", []domain.Event{
			domain.OfferSet{
				Type:    domain.EventTypeOfferSet,
				AssetID: "asset-events",
				Seller:  "alice",
				Price:   units(3),
			},
		})
		require.NoError(t, err)

		waitTimeout(t, wg, 2*time.Second)

		require.Len(t, got, 1)
		event, ok := got[0].(domain.OfferSet)
		require.True(t, ok)
		require.Equal(t, "asset-events", event.AssetID)
		require.Equal(t, "alice", event.Seller)
		require.Zero(t, event.Price.Cmp(units(3)))
	})
}

func testOfferRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_offer_repository", func(t *testing.T) {
		repo := svc.Offers()

		offer, err := repo.GetOffer(ctx, "asset-offers")
		require.NoError(t, err)
		require.Nil(t, offer)

		newOffer := domain.NewOffer("asset-offers", "alice", units(10))
		require.NoError(t, repo.AddOffer(ctx, *newOffer))

		err = repo.AddOffer(ctx, *newOffer)
		require.Error(t, err, "double insert must fail")

		offer, err = repo.GetOffer(ctx, "asset-offers")
		require.NoError(t, err)
		require.NotNil(t, offer)
		require.Equal(t, "alice", offer.Seller)
		require.True(t, offer.IsLive())

		sold := *offer
		sold.MarkSold()
		require.NoError(t, repo.UpdateOffer(ctx, sold))

		offer, err = repo.GetOffer(ctx, "asset-offers")
		require.NoError(t, err)
		require.True(t, offer.Sold)
		require.Zero(t, offer.Price.Sign())
		require.Zero(t, offer.SoldPrice.Cmp(units(10)))

		offers, err := repo.GetAllOffers(ctx)
		require.NoError(t, err)
		require.Len(t, offers, 1)

		require.NoError(t, repo.DeleteOffer(ctx, "asset-offers"))
		offer, err = repo.GetOffer(ctx, "asset-offers")
		require.NoError(t, err)
		require.Nil(t, offer)

		// deleting a missing offer is a no-op
		require.NoError(t, repo.DeleteOffer(ctx, "asset-offers"))
	})
}

func testBidRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_bid_repository", func(t *testing.T) {
		repo := svc.Bids()

		bid, err := repo.GetBid(ctx, "asset-bids")
		require.NoError(t, err)
		require.Nil(t, bid)

		first := domain.NewBid("asset-bids", "bob", units(5))
		require.NoError(t, repo.UpsertBid(ctx, *first))

		// the slot is overwritten by a later bid
		second := domain.NewBid("asset-bids", "carol", units(6))
		require.NoError(t, repo.UpsertBid(ctx, *second))

		bid, err = repo.GetBid(ctx, "asset-bids")
		require.NoError(t, err)
		require.Equal(t, "carol", bid.Bidder)
		require.Zero(t, bid.OfferPrice.Cmp(units(6)))

		require.NoError(t, repo.DeleteBid(ctx, "asset-bids"))
		bid, err = repo.GetBid(ctx, "asset-bids")
		require.NoError(t, err)
		require.Nil(t, bid)
	})
}

func testCreatorRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_creator_repository", func(t *testing.T) {
		repo := svc.Creators()

		creator, err := repo.GetCreator(ctx, "asset-creators")
		require.NoError(t, err)
		require.Nil(t, creator)

		record := domain.NewCreator("asset-creators", "carol", units(10))
		require.NoError(t, repo.AddCreator(ctx, *record))

		err = repo.AddCreator(ctx, *record)
		require.Error(t, err, "creator record is insert-only")

		creator, err = repo.GetCreator(ctx, "asset-creators")
		require.NoError(t, err)
		require.Equal(t, "carol", creator.Creator)
		require.Zero(t, creator.RoyaltyRate.Cmp(units(10)))
	})
}

func testBalanceRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_balance_repository", func(t *testing.T) {
		repo := svc.Balances()

		balance, err := repo.GetBalance(ctx, "dave")
		require.NoError(t, err)
		require.Nil(t, balance)

		newBalance, err := repo.Credit(ctx, "dave", units(10))
		require.NoError(t, err)
		require.Zero(t, newBalance.Cmp(units(10)))

		newBalance, err = repo.Debit(ctx, "dave", units(4))
		require.NoError(t, err)
		require.Zero(t, newBalance.Cmp(units(6)))

		_, err = repo.Debit(ctx, "dave", units(7))
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)

		_, err = repo.Debit(ctx, "unknown", units(1))
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)

		balance, err = repo.GetBalance(ctx, "dave")
		require.NoError(t, err)
		require.Zero(t, balance.Amount.Cmp(units(6)), "failed debits leave the balance")

		_, err = repo.Credit(ctx, "erin", units(2))
		require.NoError(t, err)

		total, err := repo.TotalHeld(ctx)
		require.NoError(t, err)
		require.Zero(t, total.Cmp(units(8)))

		balances, err := repo.GetAllBalances(ctx)
		require.NoError(t, err)
		require.Len(t, balances, 2)
	})
}

func testSettingsRepository(t *testing.T, svc ports.RepoManager) {
	t.Run("test_settings_repository", func(t *testing.T) {
		repo := svc.Settings()

		settings, err := repo.Get(ctx)
		require.NoError(t, err)
		require.Nil(t, settings)

		seeded := domain.NewSettings("owner-1", "registry-1", "market-1", units(5))
		seeded.UpdatedAt = time.Now()
		require.NoError(t, repo.Upsert(ctx, *seeded))

		settings, err = repo.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "owner-1", settings.Owner)
		require.Equal(t, "registry-1", settings.RegistryAddress)
		require.Equal(t, "market-1", settings.MarketAddress)
		require.Zero(t, settings.PlatformFeeRate.Cmp(units(5)))

		updated := *settings
		updated.Owner = "owner-2"
		require.NoError(t, repo.Upsert(ctx, updated))

		settings, err = repo.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "owner-2", settings.Owner)

		require.NoError(t, repo.Clear(ctx))
		settings, err = repo.Get(ctx)
		require.NoError(t, err)
		require.Nil(t, settings)
	})
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for event handlers")
	}
}
