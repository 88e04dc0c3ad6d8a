// Package modules hosts the built-in module implementations and their
// registry. A module converges one aspect of host state from an
// argument map and reports a structured result.
package modules

import (
	"context"
	"sort"
	"sync"

	"go.trai.ch/ply/internal/core/domain"
	"go.trai.ch/zerr"
)

// Module is a named action implementation invoked by tasks.
type Module interface {
	// Name returns the module name used in playbooks.
	Name() string

	// Run converges the state declared by args. Failures that should be
	// captured per host are reported in the result; an error return is
	// reserved for argument and environment problems.
	Run(ctx context.Context, args domain.Vars, opts domain.ActionOptions) (*domain.TaskResult, error)
}

// Registry maps module names to implementations.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Module)}
}

// Register adds a module, replacing any previous module with the same name.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[m.Name()] = m
}

// Get returns the named module or domain.ErrUnknownModule.
func (r *Registry) Get(name string) (Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byName[name]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownModule, "module", name)
	}
	return m, nil
}

// Has reports whether a module with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry()

// Register adds a module to the default registry. Module packages call
// this from init, so a blank import is enough to make a module
// available.
func Register(m Module) {
	defaultRegistry.Register(m)
}

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}
