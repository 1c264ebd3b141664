// Package di wires the marketd services from a loaded configuration.
package di

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrServiceNotFound is returned by Get for names with neither an instance
// nor a builder.
var ErrServiceNotFound = errors.New("service not found")

// Container is the dependency injection container.
// It manages service registration, lazy resolution and shutdown.
type Container struct {
	mu       sync.RWMutex
	services map[string]interface{}
	builders map[string]Builder
	// built lists lazily built services in build order
	built []string
}

// Builder is a function that creates a service instance.
type Builder func(c *Container) (interface{}, error)

// New creates a new dependency injection container.
func New() *Container {
	return &Container{
		services: make(map[string]interface{}),
		builders: make(map[string]Builder),
	}
}

// Register registers a service instance.
func (c *Container) Register(name string, service interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[name] = service
}

// RegisterBuilder registers a builder function for lazy instantiation.
func (c *Container) RegisterBuilder(name string, builder Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[name] = builder
}

// Get retrieves a service by name, building it on first use. Builders may
// call Get for their own dependencies.
func (c *Container) Get(name string) (interface{}, error) {
	c.mu.RLock()
	service, exists := c.services[name]
	builder, hasBuilder := c.builders[name]
	c.mu.RUnlock()

	if exists {
		return service, nil
	}
	if !hasBuilder {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
	}

	// built outside the lock so builders can resolve dependencies
	service, err := builder(c)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.services[name]; exists {
		if closer, ok := service.(io.Closer); ok {
			closer.Close()
		}
		return existing, nil
	}
	c.services[name] = service
	c.built = append(c.built, name)
	return service, nil
}

// MustGet retrieves a service or panics if not found.
func (c *Container) MustGet(name string) interface{} {
	service, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return service
}

// Has checks if a service is registered.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.services[name]
	if exists {
		return true
	}
	_, exists = c.builders[name]
	return exists
}

// ServiceNames returns all registered service names, sorted.
func (c *Container) ServiceNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make(map[string]bool)
	for name := range c.services {
		names[name] = true
	}
	for name := range c.builders {
		names[name] = true
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Close closes the built services that implement io.Closer, newest first,
// and forgets them.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for i := len(c.built) - 1; i >= 0; i-- {
		name := c.built[i]
		if closer, ok := c.services[name].(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", name, err))
			}
		}
		delete(c.services, name)
	}
	c.built = nil
	return errors.Join(errs...)
}

// Service names constants for type-safe access.
const (
	ServiceConfig   = "config"
	ServiceLogger   = "logger"
	ServiceDatabase = "database"
	ServiceState    = "state"
	ServiceJournal  = "history"
	ServiceMarket   = "market"
)
