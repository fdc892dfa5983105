package inmemoryregistry_test

import (
	"context"
	"testing"

	inmemoryregistry "github.com/mercatohq/marketd/internal/infrastructure/registry/inmemory"
	"github.com/stretchr/testify/require"
)

func TestAssetRegistry(t *testing.T) {
	ctx := context.Background()
	registry := inmemoryregistry.NewAssetRegistry()

	require.NoError(t, registry.RegisterAsset("asset-1", "alice", "carol"))
	require.Error(t, registry.RegisterAsset("asset-1", "bob", ""))

	owner, err := registry.OwnerOf(ctx, "asset-1")
	require.NoError(t, err)
	require.Equal(t, "alice", owner)

	creator, err := registry.CreatorOf(ctx, "asset-1")
	require.NoError(t, err)
	require.Equal(t, "carol", creator)

	_, err = registry.OwnerOf(ctx, "missing")
	require.Error(t, err)

	require.NoError(t, registry.Approve("asset-1", "market-1"))
	operator, err := registry.ApprovedOperatorOf(ctx, "asset-1")
	require.NoError(t, err)
	require.Equal(t, "market-1", operator)

	require.Error(t, registry.Transfer(ctx, "asset-1", "bob", "dave"), "wrong owner")
	require.NoError(t, registry.Transfer(ctx, "asset-1", "alice", "bob"))

	owner, err = registry.OwnerOf(ctx, "asset-1")
	require.NoError(t, err)
	require.Equal(t, "bob", owner)

	operator, err = registry.ApprovedOperatorOf(ctx, "asset-1")
	require.NoError(t, err)
	require.Empty(t, operator, "transfer revokes the approval")
}

func TestFactory(t *testing.T) {
	registry := inmemoryregistry.NewAssetRegistry()
	factory := inmemoryregistry.Factory(registry)

	first, err := factory("registry-1")
	require.NoError(t, err)
	second, err := factory("registry-2")
	require.NoError(t, err)
	require.Same(t, first, second)
}
