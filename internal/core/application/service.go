package application

import (
	"context"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/mercatohq/marketd/internal/core/ports"
	"github.com/mercatohq/marketd/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MarketService is the marketplace façade: listings, bids, the escrow
// ledger, and purchase settlement. Mutating operations either commit fully
// or leave no trace, and each successful mutation emits exactly one event.
type MarketService interface {
	AddOffer(ctx context.Context, assetID, seller string, price, royaltyRate *big.Int) error
	CancelOffer(ctx context.Context, assetID, caller string) error
	UpdateOffer(ctx context.Context, assetID, caller string, newPrice *big.Int) error
	AddBid(ctx context.Context, assetID, bidder string, amount, attachedFunds *big.Int) error
	CancelBid(ctx context.Context, assetID, caller string) error
	Buy(ctx context.Context, assetID, buyer string) error
	Deposit(ctx context.Context, account string, amount, attachedFunds *big.Int) error
	Withdraw(ctx context.Context, account string, amount, attachedFunds *big.Int) error
	GetOffer(ctx context.Context, assetID string) (*domain.Offer, error)
	GetBid(ctx context.Context, assetID string) (*domain.Bid, error)
	GetCreatorInfo(ctx context.Context, assetID string) (*domain.Creator, error)
	GetBalance(ctx context.Context, caller string) (*big.Int, error)
	BalanceOf(ctx context.Context, account string) (*big.Int, error)
	TotalHeld(ctx context.Context) (*big.Int, error)
	Stop()
}

type marketService struct {
	repoManager ports.RepoManager
	registry    *RegistryManager

	// mtx serializes every mutating operation. It is never held across the
	// external registry transfer: settlement commits first, then the lock is
	// released, then the transfer is issued.
	mtx sync.Mutex
}

func NewMarketService(
	repoManager ports.RepoManager, registry *RegistryManager,
) (MarketService, error) {
	svc := &marketService{
		repoManager: repoManager,
		registry:    registry,
	}
	return svc, nil
}

func (s *marketService) Stop() {
	s.repoManager.Close()
	log.Debug("closed connection to db")
}

func (s *marketService) AddOffer(
	ctx context.Context, assetID, seller string, price, royaltyRate *big.Int,
) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if price == nil || price.Sign() <= 0 {
		return errors.INVALID_AMOUNT.New("offer price must be positive").
			WithMetadata(errors.AmountMetadata{Amount: bigString(price)})
	}

	existing, err := s.repoManager.Offers().GetOffer(ctx, assetID)
	if err != nil {
		return err
	}
	if existing != nil && existing.IsLive() {
		return errors.DUPLICATE_OFFER.New(
			"asset %s already has a live offer", assetID,
		).WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}

	registry := s.registry.Registry()
	if err := s.checkSellerAndApproval(ctx, registry, assetID, seller); err != nil {
		return err
	}

	offer := domain.NewOffer(assetID, seller, price)
	if existing != nil {
		// the previous, sold offer record is replaced by the new listing
		err = s.repoManager.Offers().UpdateOffer(ctx, *offer)
	} else {
		err = s.repoManager.Offers().AddOffer(ctx, *offer)
	}
	if err != nil {
		return err
	}

	// The creator record is written once, when the creator itself first
	// lists the asset with a nonzero royalty rate. It never changes again.
	if royaltyRate != nil && royaltyRate.Sign() > 0 {
		creator, err := registry.CreatorOf(ctx, assetID)
		if err == nil && creator != "" && creator == seller {
			existingCreator, err := s.repoManager.Creators().GetCreator(ctx, assetID)
			if err != nil {
				return err
			}
			if existingCreator == nil {
				record := domain.NewCreator(assetID, creator, royaltyRate)
				if err := s.repoManager.Creators().AddCreator(ctx, *record); err != nil {
					return err
				}
			}
		}
	}

	s.publishEvents(ctx, domain.OfferTopic, assetID, domain.OfferSet{
		Type:    domain.EventTypeOfferSet,
		AssetID: assetID,
		Seller:  seller,
		Price:   new(big.Int).Set(price),
	})
	return nil
}

func (s *marketService) CancelOffer(ctx context.Context, assetID, caller string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	offer, err := s.repoManager.Offers().GetOffer(ctx, assetID)
	if err != nil {
		return err
	}
	if offer == nil {
		return errors.NOT_FOUND.New("no offer for asset %s", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	if caller != offer.Seller {
		return errors.AUTHORIZATION_DENIED.New(
			"caller %s is not the seller of asset %s", caller, assetID,
		).WithMetadata(errors.CallerMetadata{Caller: caller})
	}
	if offer.Sold {
		return errors.ALREADY_SOLD.New("offer for asset %s is already sold", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}

	if err := s.repoManager.Offers().DeleteOffer(ctx, assetID); err != nil {
		return err
	}

	s.publishEvents(ctx, domain.OfferTopic, assetID, domain.OfferCanceled{
		Type:    domain.EventTypeOfferCanceled,
		AssetID: assetID,
		Seller:  offer.Seller,
	})
	return nil
}

func (s *marketService) UpdateOffer(
	ctx context.Context, assetID, caller string, newPrice *big.Int,
) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if newPrice == nil || newPrice.Sign() <= 0 {
		return errors.INVALID_AMOUNT.New("offer price must be positive").
			WithMetadata(errors.AmountMetadata{Amount: bigString(newPrice)})
	}

	offer, err := s.repoManager.Offers().GetOffer(ctx, assetID)
	if err != nil {
		return err
	}
	if offer == nil {
		return errors.NOT_FOUND.New("no offer for asset %s", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	if caller != offer.Seller {
		return errors.AUTHORIZATION_DENIED.New(
			"caller %s is not the seller of asset %s", caller, assetID,
		).WithMetadata(errors.CallerMetadata{Caller: caller})
	}
	if offer.Sold {
		return errors.ALREADY_SOLD.New("offer for asset %s is already sold", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}

	registry := s.registry.Registry()
	if err := s.checkSellerAndApproval(ctx, registry, assetID, caller); err != nil {
		return err
	}

	updated := *offer
	updated.Price = new(big.Int).Set(newPrice)
	if err := s.repoManager.Offers().UpdateOffer(ctx, updated); err != nil {
		return err
	}

	s.publishEvents(ctx, domain.OfferTopic, assetID, domain.OfferUpdated{
		Type:    domain.EventTypeOfferUpdated,
		AssetID: assetID,
		Seller:  offer.Seller,
		Price:   new(big.Int).Set(newPrice),
	})
	return nil
}

func (s *marketService) AddBid(
	ctx context.Context, assetID, bidder string, amount, attachedFunds *big.Int,
) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if amount == nil || amount.Sign() <= 0 || attachedFunds == nil ||
		amount.Cmp(attachedFunds) != 0 {
		return errors.INVALID_AMOUNT.New(
			"bid amount must be positive and match the attached funds",
		).WithMetadata(errors.AmountMetadata{
			Amount: bigString(amount), Attached: bigString(attachedFunds),
		})
	}

	owner, err := s.registry.Registry().OwnerOf(ctx, assetID)
	if err != nil || owner == "" {
		return errors.NOT_FOUND.New("asset %s is not registered", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}

	// The attached funds are credited no matter what: a rejected bid still
	// leaves the deposit in the bidder's withdrawable balance.
	if _, err := s.repoManager.Balances().Credit(ctx, bidder, amount); err != nil {
		return err
	}

	existing, err := s.repoManager.Bids().GetBid(ctx, assetID)
	if err != nil {
		return err
	}
	if existing != nil && existing.Active && existing.Bidder == bidder {
		s.publishEvents(ctx, domain.BidTopic, assetID, domain.BidRejected{
			Type:       domain.EventTypeBidRejected,
			AssetID:    assetID,
			Bidder:     bidder,
			OfferPrice: new(big.Int).Set(amount),
		})
		return nil
	}

	bid := domain.NewBid(assetID, bidder, amount)
	if err := s.repoManager.Bids().UpsertBid(ctx, *bid); err != nil {
		return err
	}

	s.publishEvents(ctx, domain.BidTopic, assetID, domain.BidAccepted{
		Type:       domain.EventTypeBidAccepted,
		AssetID:    assetID,
		Bidder:     bidder,
		OfferPrice: new(big.Int).Set(amount),
	})
	return nil
}

func (s *marketService) CancelBid(ctx context.Context, assetID, caller string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	bid, err := s.repoManager.Bids().GetBid(ctx, assetID)
	if err != nil {
		return err
	}
	if bid == nil || !bid.Active {
		return errors.NOT_FOUND.New("no active bid for asset %s", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	if caller != bid.Bidder {
		return errors.AUTHORIZATION_DENIED.New(
			"caller %s is not the bidder for asset %s", caller, assetID,
		).WithMetadata(errors.CallerMetadata{Caller: caller})
	}

	// Only the slot is released. The deposit stays in the bidder's balance
	// until withdrawn.
	if err := s.repoManager.Bids().DeleteBid(ctx, assetID); err != nil {
		return err
	}

	s.publishEvents(ctx, domain.BidTopic, assetID, domain.BidCanceled{
		Type:    domain.EventTypeBidCanceled,
		AssetID: assetID,
		Bidder:  bid.Bidder,
	})
	return nil
}

func (s *marketService) Buy(ctx context.Context, assetID, buyer string) error {
	s.mtx.Lock()

	settled, err := s.settle(ctx, assetID, buyer)
	if err != nil {
		s.mtx.Unlock()
		return err
	}

	// Settlement is committed. Release the lock before calling out to the
	// registry: a reentrant Buy on the same asset now observes Sold=true.
	s.mtx.Unlock()

	registry := s.registry.Registry()
	if err := registry.Transfer(ctx, assetID, settled.seller, buyer); err != nil {
		s.mtx.Lock()
		s.compensate(ctx, settled)
		s.mtx.Unlock()
		return errors.INVALID_TRANSFER.Wrap(err).WithMetadata(errors.TransferMetadata{
			From: settled.seller, To: buyer, AssetID: assetID,
		})
	}

	s.publishEvents(ctx, domain.OfferTopic, assetID, domain.PurchaseCompleted{
		Type:           domain.EventTypePurchaseCompleted,
		TradeID:        uuid.New().String(),
		AssetID:        assetID,
		Seller:         settled.seller,
		Buyer:          buyer,
		Price:          settled.price,
		RoyaltyAmount:  settled.royalty,
		PlatformAmount: settled.platformFee,
		SellerProceeds: settled.sellerProceeds,
	})
	return nil
}

// settlement records the balance movements committed for a purchase so they
// can be reversed if the registry transfer fails.
type settlement struct {
	assetID        string
	seller         string
	buyer          string
	creator        string
	price          *big.Int
	royalty        *big.Int
	platformFee    *big.Int
	sellerProceeds *big.Int
	previousOffer  domain.Offer
}

// settle validates the purchase and commits the full settlement: buyer
// debited, offer marked sold, proceeds distributed. Callers hold s.mtx.
func (s *marketService) settle(
	ctx context.Context, assetID, buyer string,
) (*settlement, error) {
	offer, err := s.repoManager.Offers().GetOffer(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, errors.NOT_FOUND.New("no offer for asset %s", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	if offer.Sold {
		return nil, errors.ALREADY_SOLD.New(
			"offer for asset %s is already sold", assetID,
		).WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}

	settings, err := s.getSettings(ctx)
	if err != nil {
		return nil, err
	}

	registry := s.registry.Registry()
	owner, err := registry.OwnerOf(ctx, assetID)
	if err != nil {
		return nil, errors.NOT_FOUND.Wrap(err).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	if owner == buyer {
		return nil, errors.AUTHORIZATION_DENIED.New(
			"buyer %s already owns asset %s", buyer, assetID,
		).WithMetadata(errors.CallerMetadata{Caller: buyer})
	}
	operator, err := registry.ApprovedOperatorOf(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if operator != settings.MarketAddress {
		return nil, errors.OPERATOR_NOT_APPROVED.New(
			"marketplace is not the approved operator for asset %s", assetID,
		).WithMetadata(errors.ApprovalMetadata{
			AssetID: assetID, Operator: operator, Market: settings.MarketAddress,
		})
	}

	price := new(big.Int).Set(offer.Price)
	balance, err := s.repoManager.Balances().GetBalance(ctx, buyer)
	if err != nil {
		return nil, err
	}
	available := new(big.Int)
	if balance != nil {
		available.Set(balance.Amount)
	}
	if available.Cmp(price) < 0 {
		return nil, errors.INSUFFICIENT_BALANCE.New(
			"balance %s does not cover price %s", available, price,
		).WithMetadata(errors.BalanceMetadata{
			Account: buyer, Amount: price.String(), Balance: available.String(),
		})
	}

	// Amounts are computed in full before any state is touched so that a
	// failure below leaves nothing to unwind.
	settled := &settlement{
		assetID:        assetID,
		seller:         offer.Seller,
		buyer:          buyer,
		price:          price,
		royalty:        new(big.Int),
		platformFee:    new(big.Int),
		sellerProceeds: new(big.Int).Set(price),
		previousOffer:  *offer,
	}

	creator, err := s.repoManager.Creators().GetCreator(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if creator != nil {
		royalty := domain.FeeAmount(price, creator.RoyaltyRate)
		if domain.FeeApplies(royalty, price) {
			settled.creator = creator.Creator
			settled.royalty = royalty
			settled.sellerProceeds.Sub(settled.sellerProceeds, royalty)
		}
	}
	platformFee := domain.FeeAmount(price, settings.PlatformFeeRate)
	if domain.FeeApplies(platformFee, price) {
		settled.platformFee = platformFee
		settled.sellerProceeds.Sub(settled.sellerProceeds, platformFee)
	}
	if settled.sellerProceeds.Sign() < 0 {
		return nil, errors.INTERNAL_ERROR.New(
			"fees on asset %s exceed the sale price", assetID,
		)
	}

	if _, err := s.repoManager.Balances().Debit(ctx, buyer, price); err != nil {
		return nil, err
	}

	sold := *offer
	sold.MarkSold()
	if err := s.repoManager.Offers().UpdateOffer(ctx, sold); err != nil {
		if _, err := s.repoManager.Balances().Credit(ctx, buyer, price); err != nil {
			log.WithError(err).Warn("failed to refund buyer after aborted settlement")
		}
		return nil, err
	}

	if settled.royalty.Sign() > 0 {
		if _, err := s.repoManager.Balances().Credit(
			ctx, settled.creator, settled.royalty,
		); err != nil {
			s.compensate(ctx, &settlement{
				assetID: assetID, seller: offer.Seller, buyer: buyer,
				price: price, royalty: new(big.Int), platformFee: new(big.Int),
				sellerProceeds: new(big.Int), previousOffer: *offer,
			})
			return nil, err
		}
	}
	if settled.platformFee.Sign() > 0 {
		if _, err := s.repoManager.Balances().Credit(
			ctx, domain.PlatformAccount, settled.platformFee,
		); err != nil {
			s.compensate(ctx, &settlement{
				assetID: assetID, seller: offer.Seller, buyer: buyer,
				price: price, royalty: settled.royalty, platformFee: new(big.Int),
				sellerProceeds: new(big.Int), previousOffer: *offer,
				creator: settled.creator,
			})
			return nil, err
		}
	}
	if settled.sellerProceeds.Sign() > 0 {
		if _, err := s.repoManager.Balances().Credit(
			ctx, offer.Seller, settled.sellerProceeds,
		); err != nil {
			s.compensate(ctx, &settlement{
				assetID: assetID, seller: offer.Seller, buyer: buyer,
				price: price, royalty: settled.royalty,
				platformFee: settled.platformFee,
				sellerProceeds: new(big.Int), previousOffer: *offer,
				creator: settled.creator,
			})
			return nil, err
		}
	}

	return settled, nil
}

// compensate reverses a committed settlement after a failed registry
// transfer. Best effort: partial reversals are logged, never retried.
// Callers hold s.mtx.
func (s *marketService) compensate(ctx context.Context, settled *settlement) {
	logger := log.WithField("asset", settled.assetID)
	if settled.royalty.Sign() > 0 {
		if _, err := s.repoManager.Balances().Debit(
			ctx, settled.creator, settled.royalty,
		); err != nil {
			logger.WithError(err).Warn("failed to claw back creator royalty")
		}
	}
	if settled.platformFee.Sign() > 0 {
		if _, err := s.repoManager.Balances().Debit(
			ctx, domain.PlatformAccount, settled.platformFee,
		); err != nil {
			logger.WithError(err).Warn("failed to claw back platform fee")
		}
	}
	if settled.sellerProceeds.Sign() > 0 {
		if _, err := s.repoManager.Balances().Debit(
			ctx, settled.seller, settled.sellerProceeds,
		); err != nil {
			logger.WithError(err).Warn("failed to claw back seller proceeds")
		}
	}
	if _, err := s.repoManager.Balances().Credit(
		ctx, settled.buyer, settled.price,
	); err != nil {
		logger.WithError(err).Warn("failed to refund buyer")
	}
	restored := settled.previousOffer
	restored.Sold = false
	restored.Price = new(big.Int).Set(settled.price)
	restored.SoldPrice = new(big.Int)
	if err := s.repoManager.Offers().UpdateOffer(ctx, restored); err != nil {
		logger.WithError(err).Warn("failed to restore offer after failed transfer")
	}
}

func (s *marketService) Deposit(
	ctx context.Context, account string, amount, attachedFunds *big.Int,
) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if amount == nil || amount.Sign() <= 0 || attachedFunds == nil ||
		amount.Cmp(attachedFunds) != 0 {
		return errors.INVALID_AMOUNT.New(
			"deposit amount must be positive and match the attached funds",
		).WithMetadata(errors.AmountMetadata{
			Amount: bigString(amount), Attached: bigString(attachedFunds),
		})
	}

	newBalance, err := s.repoManager.Balances().Credit(ctx, account, amount)
	if err != nil {
		return err
	}

	s.publishEvents(ctx, domain.LedgerTopic, account, domain.Deposited{
		Type:    domain.EventTypeDeposited,
		Account: account,
		Amount:  new(big.Int).Set(amount),
		Balance: newBalance,
	})
	return nil
}

func (s *marketService) Withdraw(
	ctx context.Context, account string, amount, attachedFunds *big.Int,
) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	// The platform pool is drained through the admin service only.
	if account == domain.PlatformAccount {
		return errors.AUTHORIZATION_DENIED.New("account is reserved").
			WithMetadata(errors.CallerMetadata{Caller: account})
	}

	return s.withdraw(ctx, account, amount, attachedFunds)
}

// withdraw debits the account and emits the Withdrawn event. Callers hold
// s.mtx. It is shared with the admin platform-pool withdrawal.
func (s *marketService) withdraw(
	ctx context.Context, account string, amount, attachedFunds *big.Int,
) error {
	if amount == nil || amount.Sign() <= 0 || attachedFunds == nil ||
		amount.Cmp(attachedFunds) != 0 {
		return errors.INVALID_AMOUNT.New(
			"withdrawal amount must be positive and match the attached funds",
		).WithMetadata(errors.AmountMetadata{
			Amount: bigString(amount), Attached: bigString(attachedFunds),
		})
	}

	newBalance, err := s.repoManager.Balances().Debit(ctx, account, amount)
	if err != nil {
		if err == domain.ErrInsufficientBalance {
			return errors.INSUFFICIENT_BALANCE.Wrap(err).
				WithMetadata(errors.BalanceMetadata{
					Account: account, Amount: amount.String(),
				})
		}
		return err
	}

	s.publishEvents(ctx, domain.LedgerTopic, account, domain.Withdrawn{
		Type:    domain.EventTypeWithdrawn,
		Account: account,
		Amount:  new(big.Int).Set(amount),
		Balance: newBalance,
	})
	return nil
}

func (s *marketService) GetOffer(
	ctx context.Context, assetID string,
) (*domain.Offer, error) {
	offer, err := s.repoManager.Offers().GetOffer(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, errors.NOT_FOUND.New("no offer for asset %s", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	return offer, nil
}

func (s *marketService) GetBid(
	ctx context.Context, assetID string,
) (*domain.Bid, error) {
	bid, err := s.repoManager.Bids().GetBid(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if bid == nil || !bid.Active {
		return nil, errors.NOT_FOUND.New("no active bid for asset %s", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	return bid, nil
}

func (s *marketService) GetCreatorInfo(
	ctx context.Context, assetID string,
) (*domain.Creator, error) {
	creator, err := s.repoManager.Creators().GetCreator(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, errors.NOT_FOUND.New("no creator record for asset %s", assetID).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	return creator, nil
}

func (s *marketService) GetBalance(
	ctx context.Context, caller string,
) (*big.Int, error) {
	return s.BalanceOf(ctx, caller)
}

func (s *marketService) BalanceOf(
	ctx context.Context, account string,
) (*big.Int, error) {
	balance, err := s.repoManager.Balances().GetBalance(ctx, account)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(balance.Amount), nil
}

func (s *marketService) TotalHeld(ctx context.Context) (*big.Int, error) {
	return s.repoManager.Balances().TotalHeld(ctx)
}

// getSettings loads the persisted settings, failing if the store was never
// initialized.
func (s *marketService) getSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.repoManager.Settings().Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, errors.INTERNAL_ERROR.New("marketplace settings not initialized")
	}
	return settings, nil
}

// checkSellerAndApproval verifies that the caller owns the asset and that the
// marketplace is its approved operator.
func (s *marketService) checkSellerAndApproval(
	ctx context.Context, registry ports.AssetRegistry, assetID, seller string,
) error {
	settings, err := s.getSettings(ctx)
	if err != nil {
		return err
	}

	owner, err := registry.OwnerOf(ctx, assetID)
	if err != nil {
		return errors.NOT_FOUND.Wrap(err).
			WithMetadata(errors.OfferMetadata{AssetID: assetID})
	}
	if owner != seller {
		return errors.AUTHORIZATION_DENIED.New(
			"caller %s does not own asset %s", seller, assetID,
		).WithMetadata(errors.CallerMetadata{Caller: seller})
	}

	operator, err := registry.ApprovedOperatorOf(ctx, assetID)
	if err != nil {
		return err
	}
	if operator != settings.MarketAddress {
		return errors.OPERATOR_NOT_APPROVED.New(
			"marketplace is not the approved operator for asset %s", assetID,
		).WithMetadata(errors.ApprovalMetadata{
			AssetID: assetID, Operator: operator, Market: settings.MarketAddress,
		})
	}
	return nil
}

func (s *marketService) publishEvents(
	ctx context.Context, topic, id string, events ...domain.Event,
) {
	if err := s.repoManager.Events().Save(ctx, topic, id, events); err != nil {
		log.WithError(err).WithField("topic", topic).Warn("failed to publish events")
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return ""
	}
	return v.String()
}
