package domain

import "math/big"

const (
	OfferTopic  = "offer_events"
	BidTopic    = "bid_events"
	LedgerTopic = "ledger_events"
	AdminTopic  = "admin_events"
)

type EventType int

const (
	EventTypeUndefined EventType = iota
	EventTypeOfferSet
	EventTypeOfferCanceled
	EventTypeOfferUpdated
	EventTypeBidAccepted
	EventTypeBidRejected
	EventTypeBidCanceled
	EventTypePurchaseCompleted
	EventTypeDeposited
	EventTypeWithdrawn
	EventTypeOwnershipTransferred
)

type Event interface {
	GetType() EventType
}

type OfferSet struct {
	Type    EventType
	AssetID string
	Seller  string
	Price   *big.Int
}

func (e OfferSet) GetType() EventType { return e.Type }

type OfferCanceled struct {
	Type    EventType
	AssetID string
	Seller  string
}

func (e OfferCanceled) GetType() EventType { return e.Type }

type OfferUpdated struct {
	Type    EventType
	AssetID string
	Seller  string
	Price   *big.Int
}

func (e OfferUpdated) GetType() EventType { return e.Type }

type BidAccepted struct {
	Type       EventType
	AssetID    string
	Bidder     string
	OfferPrice *big.Int
}

func (e BidAccepted) GetType() EventType { return e.Type }

// BidRejected signals a duplicate bid: the slot already holds an active bid
// from the same bidder. The deposit made alongside the rejected bid stands.
type BidRejected struct {
	Type       EventType
	AssetID    string
	Bidder     string
	OfferPrice *big.Int
}

func (e BidRejected) GetType() EventType { return e.Type }

type BidCanceled struct {
	Type    EventType
	AssetID string
	Bidder  string
}

func (e BidCanceled) GetType() EventType { return e.Type }

type PurchaseCompleted struct {
	Type           EventType
	TradeID        string
	AssetID        string
	Seller         string
	Buyer          string
	Price          *big.Int
	RoyaltyAmount  *big.Int
	PlatformAmount *big.Int
	SellerProceeds *big.Int
}

func (e PurchaseCompleted) GetType() EventType { return e.Type }

type Deposited struct {
	Type    EventType
	Account string
	Amount  *big.Int
	Balance *big.Int
}

func (e Deposited) GetType() EventType { return e.Type }

type Withdrawn struct {
	Type    EventType
	Account string
	Amount  *big.Int
	Balance *big.Int
}

func (e Withdrawn) GetType() EventType { return e.Type }

type OwnershipTransferred struct {
	Type     EventType
	Previous string
	Owner    string
}

func (e OwnershipTransferred) GetType() EventType { return e.Type }
