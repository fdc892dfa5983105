package application_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/mercatohq/marketd/internal/core/domain"
	"github.com/mercatohq/marketd/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAdminAuthorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.True(t, errors.AUTHORIZATION_DENIED.Is(
		f.admin.SetRegistryAddress(ctx, "stranger", "registry-2"),
	))
	require.True(t, errors.AUTHORIZATION_DENIED.Is(
		f.admin.SetPlatformFeeRate(ctx, "stranger", percent(1)),
	))
	require.True(t, errors.AUTHORIZATION_DENIED.Is(
		f.admin.WithdrawPlatformBalance(ctx, "stranger", units(1), units(1)),
	))
	require.True(t, errors.AUTHORIZATION_DENIED.Is(
		f.admin.TransferOwnership(ctx, "stranger", "stranger"),
	))
}

func TestSetRegistryAddress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.admin.SetRegistryAddress(ctx, ownerAddr, "registry-2"))

	settings, err := f.admin.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "registry-2", settings.RegistryAddress)

	err = f.admin.SetRegistryAddress(ctx, ownerAddr, "")
	require.True(t, errors.INVALID_TRANSFER.Is(err))
}

func TestSetPlatformFeeRate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.admin.SetPlatformFeeRate(ctx, ownerAddr, percent(2)))

	settings, err := f.admin.GetSettings(ctx)
	require.NoError(t, err)
	require.Zero(t, settings.PlatformFeeRate.Cmp(percent(2)))

	err = f.admin.SetPlatformFeeRate(ctx, ownerAddr, big.NewInt(-1))
	require.True(t, errors.INVALID_AMOUNT.Is(err))

	// zero disables the fee
	require.NoError(t, f.admin.SetPlatformFeeRate(ctx, ownerAddr, big.NewInt(0)))
}

func TestWithdrawPlatformBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// accrue a platform fee through a sale: 1 unit at 5%
	f.registerAsset(assetID, sellerAddr, minterAddr)
	require.NoError(t, f.svc.AddOffer(ctx, assetID, sellerAddr, units(1), nil))
	f.fund(t, buyerAddr, units(1))
	require.NoError(t, f.svc.Buy(ctx, assetID, buyerAddr))

	fee := new(big.Int).Quo(domain.Unit, big.NewInt(20))
	require.Zero(t, f.balance(t, domain.PlatformAccount).Cmp(fee))

	overdraft := new(big.Int).Add(fee, big.NewInt(1))
	err := f.admin.WithdrawPlatformBalance(ctx, ownerAddr, overdraft, overdraft)
	require.True(t, errors.INSUFFICIENT_BALANCE.Is(err))

	require.NoError(t, f.admin.WithdrawPlatformBalance(ctx, ownerAddr, fee, fee))
	require.Zero(t, f.balance(t, domain.PlatformAccount).Sign())
}

func TestTransferOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	err := f.admin.TransferOwnership(ctx, ownerAddr, "")
	require.True(t, errors.INVALID_TRANSFER.Is(err))

	require.NoError(t, f.admin.TransferOwnership(ctx, ownerAddr, "owner-2"))

	settings, err := f.admin.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "owner-2", settings.Owner)

	// the previous owner lost its powers
	err = f.admin.SetPlatformFeeRate(ctx, ownerAddr, percent(1))
	require.True(t, errors.AUTHORIZATION_DENIED.Is(err))
	require.NoError(t, f.admin.SetPlatformFeeRate(ctx, "owner-2", percent(1)))
}
