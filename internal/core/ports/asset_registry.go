package ports

import "context"

// AssetRegistry is the external ownership registry the marketplace settles
// against. The registry is authoritative for ownership, operator approvals
// and creator attribution; the marketplace never caches its answers.
type AssetRegistry interface {
	// OwnerOf returns the current owner of the asset, or an error if the
	// asset does not exist.
	OwnerOf(ctx context.Context, assetID string) (string, error)
	// ApprovedOperatorOf returns the operator approved for the asset, if any.
	ApprovedOperatorOf(ctx context.Context, assetID string) (string, error)
	// CreatorOf returns the address that minted the asset.
	CreatorOf(ctx context.Context, assetID string) (string, error)
	// Transfer moves the asset from one owner to another. Callers must not
	// hold marketplace locks across this call: the registry may call back
	// into the marketplace before returning.
	Transfer(ctx context.Context, assetID, from, to string) error
}

// AssetRegistryFactory builds a registry client for the given address. The
// admin service swaps registries at runtime through this factory.
type AssetRegistryFactory func(address string) (AssetRegistry, error)
