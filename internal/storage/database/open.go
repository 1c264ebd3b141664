package database

import "fmt"

// Backend names accepted by the [database] config section.
const (
	BackendPebble = "pebble"
	BackendBBolt  = "bbolt"
)

// ManagerFactory builds a Manager rooted at path.
type ManagerFactory func(path string) Manager

var backends = map[string]ManagerFactory{}

// RegisterBackend makes a backend available to NewManager. Backends register
// themselves from the binary's wiring code.
func RegisterBackend(name string, factory ManagerFactory) {
	backends[name] = factory
}

// NewManager returns a manager for the named backend.
func NewManager(backend, path string) (Manager, error) {
	factory, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return factory(path), nil
}
