package application

import (
	"fmt"
	"sync"

	"github.com/mercatohq/marketd/internal/core/ports"
)

// RegistryManager holds the active asset registry client and rebuilds it
// when the admin points the marketplace at a new registry address.
type RegistryManager struct {
	factory ports.AssetRegistryFactory

	mtx      sync.RWMutex
	address  string
	registry ports.AssetRegistry
}

func NewRegistryManager(
	factory ports.AssetRegistryFactory, address string,
) (*RegistryManager, error) {
	if factory == nil {
		return nil, fmt.Errorf("missing asset registry factory")
	}
	registry, err := factory(address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to asset registry %s: %s", address, err)
	}
	return &RegistryManager{
		factory:  factory,
		address:  address,
		registry: registry,
	}, nil
}

func (m *RegistryManager) Registry() ports.AssetRegistry {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.registry
}

func (m *RegistryManager) Address() string {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.address
}

// Swap replaces the active registry with one built for the given address.
// The previous client keeps serving calls already in flight.
func (m *RegistryManager) Swap(address string) error {
	registry, err := m.factory(address)
	if err != nil {
		return fmt.Errorf("failed to connect to asset registry %s: %s", address, err)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.address = address
	m.registry = registry
	return nil
}
