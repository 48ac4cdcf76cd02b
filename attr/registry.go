package attr

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the descriptor table for each domain type. Tables are
// registered once at startup and are immutable afterwards; the registry is
// safe for concurrent lookup.
type Registry struct {
	mu     sync.RWMutex
	tables map[string][]Attribute
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string][]Attribute)}
}

// Register declares the descriptor table for a type. Registering a type
// twice is an error.
func (r *Registry) Register(typeName string, attrs []Attribute) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[typeName]; exists {
		return fmt.Errorf("type %s is already registered", typeName)
	}
	table := make([]Attribute, len(attrs))
	copy(table, attrs)
	r.tables[typeName] = table
	return nil
}

// Lookup returns the descriptor table for a type, in declaration order.
// Unregistered types yield an empty table.
func (r *Registry) Lookup(typeName string) []Attribute {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := r.tables[typeName]
	result := make([]Attribute, len(table))
	copy(result, table)
	return result
}

// List returns the registered type names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry backs the package-level registration functions. Domain
// packages declare their tables as package-level vars against it.
var defaultRegistry = NewRegistry()

// Register declares a type's descriptor table in the default registry.
func Register(typeName string, attrs []Attribute) error {
	return defaultRegistry.Register(typeName, attrs)
}

// MustRegister is Register, panicking on error. Intended for package-level
// table declarations.
func MustRegister(typeName string, attrs []Attribute) {
	if err := Register(typeName, attrs); err != nil {
		panic(err)
	}
}

// Lookup returns a type's descriptor table from the default registry.
func Lookup(typeName string) []Attribute {
	return defaultRegistry.Lookup(typeName)
}

// List returns the type names registered in the default registry, sorted.
func List() []string {
	return defaultRegistry.List()
}
