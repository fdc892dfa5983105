package application

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/mercatohq/marketd/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AdminService exposes the owner-gated operations: repointing the asset
// registry, tuning the platform fee, draining the fee pool and handing over
// ownership.
type AdminService interface {
	SetRegistryAddress(ctx context.Context, caller, address string) error
	SetPlatformFeeRate(ctx context.Context, caller string, rate *big.Int) error
	WithdrawPlatformBalance(
		ctx context.Context, caller string, amount, attachedFunds *big.Int,
	) error
	TransferOwnership(ctx context.Context, caller, newOwner string) error
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

type adminService struct {
	market *marketService
}

// NewAdminService wraps the market service so admin operations share its
// lock and event plumbing.
func NewAdminService(marketSvc MarketService) (AdminService, error) {
	market, ok := marketSvc.(*marketService)
	if !ok {
		return nil, fmt.Errorf("unexpected market service implementation")
	}
	return &adminService{market: market}, nil
}

func (a *adminService) SetRegistryAddress(
	ctx context.Context, caller, address string,
) error {
	a.market.mtx.Lock()
	defer a.market.mtx.Unlock()

	settings, err := a.requireOwner(ctx, caller)
	if err != nil {
		return err
	}

	if address == "" {
		return errors.INVALID_TRANSFER.New("registry address must not be empty").
			WithMetadata(errors.TransferMetadata{To: address})
	}

	if err := a.market.registry.Swap(address); err != nil {
		return err
	}

	updated := *settings
	updated.RegistryAddress = address
	updated.UpdatedAt = time.Now()
	if err := a.market.repoManager.Settings().Upsert(ctx, updated); err != nil {
		return err
	}

	log.WithField("address", address).Info("asset registry repointed")
	return nil
}

func (a *adminService) SetPlatformFeeRate(
	ctx context.Context, caller string, rate *big.Int,
) error {
	a.market.mtx.Lock()
	defer a.market.mtx.Unlock()

	settings, err := a.requireOwner(ctx, caller)
	if err != nil {
		return err
	}

	if rate == nil || rate.Sign() < 0 {
		return errors.INVALID_AMOUNT.New("platform fee rate must not be negative").
			WithMetadata(errors.AmountMetadata{Amount: bigString(rate)})
	}

	updated := *settings
	updated.PlatformFeeRate = new(big.Int).Set(rate)
	updated.UpdatedAt = time.Now()
	return a.market.repoManager.Settings().Upsert(ctx, updated)
}

func (a *adminService) WithdrawPlatformBalance(
	ctx context.Context, caller string, amount, attachedFunds *big.Int,
) error {
	a.market.mtx.Lock()
	defer a.market.mtx.Unlock()

	if _, err := a.requireOwner(ctx, caller); err != nil {
		return err
	}

	return a.market.withdraw(ctx, domain.PlatformAccount, amount, attachedFunds)
}

func (a *adminService) TransferOwnership(
	ctx context.Context, caller, newOwner string,
) error {
	a.market.mtx.Lock()
	defer a.market.mtx.Unlock()

	settings, err := a.requireOwner(ctx, caller)
	if err != nil {
		return err
	}

	if newOwner == "" {
		return errors.INVALID_TRANSFER.New("new owner must not be the null address").
			WithMetadata(errors.TransferMetadata{From: settings.Owner, To: newOwner})
	}

	updated := *settings
	updated.Owner = newOwner
	updated.UpdatedAt = time.Now()
	if err := a.market.repoManager.Settings().Upsert(ctx, updated); err != nil {
		return err
	}

	a.market.publishEvents(ctx, domain.AdminTopic, newOwner, domain.OwnershipTransferred{
		Type:     domain.EventTypeOwnershipTransferred,
		Previous: settings.Owner,
		Owner:    newOwner,
	})
	return nil
}

func (a *adminService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return a.market.repoManager.Settings().Get(ctx)
}

func (a *adminService) requireOwner(
	ctx context.Context, caller string,
) (*domain.Settings, error) {
	settings, err := a.market.getSettings(ctx)
	if err != nil {
		return nil, err
	}
	if caller == "" || caller != settings.Owner {
		return nil, errors.AUTHORIZATION_DENIED.New(
			"caller %s is not the marketplace owner", caller,
		).WithMetadata(errors.CallerMetadata{Caller: caller})
	}
	return settings, nil
}
