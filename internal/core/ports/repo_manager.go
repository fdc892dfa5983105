package ports

import "github.com/mercatohq/marketd/internal/core/domain"

type RepoManager interface {
	Events() domain.EventRepository
	Offers() domain.OfferRepository
	Bids() domain.BidRepository
	Creators() domain.CreatorRepository
	Balances() domain.BalanceRepository
	Settings() domain.SettingsRepository
	Close()
}
