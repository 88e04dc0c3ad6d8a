package ports

import "go.trai.ch/ply/internal/core/domain"

// InventorySource defines the interface for loading the host inventory.
//
//go:generate go run go.uber.org/mock/mockgen -source=inventory.go -destination=mocks/mock_inventory.go -package=mocks
type InventorySource interface {
	// Load parses the inventory at the given path. An inventory that
	// resolves to zero hosts returns domain.ErrEmptyInventory.
	Load(path string) (*domain.Inventory, error)
}

// RetryWriter persists the retry inventory after a partial failure.
type RetryWriter interface {
	// Write stores the failed host list for the given playbook and
	// returns the path of the artifact.
	Write(playbookPath string, hosts []string) (string, error)
}
