// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/ply/internal/core/domain"

// PlaybookLoader defines the interface for loading playbooks.
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type PlaybookLoader interface {
	// Load reads, schema-validates and decodes the playbook at the
	// given path. A failed schema validation returns
	// domain.ErrPlaybookInvalid.
	Load(path string) (*domain.Playbook, error)
}
