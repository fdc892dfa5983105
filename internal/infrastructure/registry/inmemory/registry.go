package inmemoryregistry

import (
	"context"
	"fmt"
	"sync"

	"github.com/mercatohq/marketd/internal/core/ports"
)

type asset struct {
	owner    string
	creator  string
	operator string
}

// AssetRegistry is an in-process registry implementation. It backs
// single-node deployments and tests; a remote registry client plugs into the
// same port.
type AssetRegistry struct {
	mtx    sync.RWMutex
	assets map[string]*asset
}

func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{assets: make(map[string]*asset)}
}

// Factory returns a registry factory that serves the given registry for any
// address. Swapping addresses at runtime keeps pointing at the same
// in-process store.
func Factory(registry *AssetRegistry) ports.AssetRegistryFactory {
	return func(_ string) (ports.AssetRegistry, error) {
		return registry, nil
	}
}

// RegisterAsset mints an asset owned by owner and attributed to creator.
func (r *AssetRegistry) RegisterAsset(id, owner, creator string) error {
	if id == "" || owner == "" {
		return fmt.Errorf("missing asset id or owner")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.assets[id]; ok {
		return fmt.Errorf("asset %s already registered", id)
	}
	r.assets[id] = &asset{owner: owner, creator: creator}
	return nil
}

// Approve sets the operator allowed to transfer the asset on the owner's
// behalf.
func (r *AssetRegistry) Approve(id, operator string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	asset, ok := r.assets[id]
	if !ok {
		return fmt.Errorf("asset %s not registered", id)
	}
	asset.operator = operator
	return nil
}

func (r *AssetRegistry) OwnerOf(_ context.Context, assetID string) (string, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	asset, ok := r.assets[assetID]
	if !ok {
		return "", fmt.Errorf("asset %s not registered", assetID)
	}
	return asset.owner, nil
}

func (r *AssetRegistry) ApprovedOperatorOf(
	_ context.Context, assetID string,
) (string, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	asset, ok := r.assets[assetID]
	if !ok {
		return "", fmt.Errorf("asset %s not registered", assetID)
	}
	return asset.operator, nil
}

func (r *AssetRegistry) CreatorOf(_ context.Context, assetID string) (string, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	asset, ok := r.assets[assetID]
	if !ok {
		return "", fmt.Errorf("asset %s not registered", assetID)
	}
	return asset.creator, nil
}

// Transfer moves the asset and revokes the operator approval, as registries
// do on ownership change.
func (r *AssetRegistry) Transfer(_ context.Context, assetID, from, to string) error {
	if to == "" {
		return fmt.Errorf("missing recipient")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()
	asset, ok := r.assets[assetID]
	if !ok {
		return fmt.Errorf("asset %s not registered", assetID)
	}
	if asset.owner != from {
		return fmt.Errorf("asset %s is not owned by %s", assetID, from)
	}
	asset.owner = to
	asset.operator = ""
	return nil
}
