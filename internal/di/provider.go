package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/config"
	"github.com/LeJamon/goMarketd/internal/core/ledger/service"
	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/storage/database"
	"github.com/LeJamon/goMarketd/internal/storage/history"
)

// stateDBName is the database holding the market state.
const stateDBName = "state"

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{
		container: container,
		config:    cfg,
	}
}

// RegisterAll registers all services. logger may be nil.
func (p *Provider) RegisterAll(logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	p.container.Register(ServiceConfig, p.config)
	p.container.Register(ServiceLogger, logger)

	p.registerStorageBuilders()
	p.registerMarketBuilders()
	return nil
}

// registerStorageBuilders registers storage service builders.
func (p *Provider) registerStorageBuilders() {
	p.container.RegisterBuilder(ServiceDatabase, func(c *Container) (interface{}, error) {
		return database.NewManager(p.config.Database.Backend, p.config.DatabasePath())
	})

	p.container.RegisterBuilder(ServiceState, func(c *Container) (interface{}, error) {
		m, err := c.Get(ServiceDatabase)
		if err != nil {
			return nil, err
		}
		db, err := m.(database.Manager).OpenDB(stateDBName)
		if err != nil {
			return nil, fmt.Errorf("open state database: %w", err)
		}
		return state.NewStore(db, state.StoreConfig{
			CacheSize:   p.config.Database.CacheSize,
			Compression: p.config.Database.Compression,
		})
	})

	p.container.RegisterBuilder(ServiceJournal, func(c *Container) (interface{}, error) {
		return history.Open(context.Background(), p.config.HistoryConfig())
	})
}

// registerMarketBuilders registers the market service builder.
func (p *Provider) registerMarketBuilders() {
	p.container.RegisterBuilder(ServiceMarket, func(c *Container) (interface{}, error) {
		store, err := p.GetState()
		if err != nil {
			return nil, err
		}
		journal, err := c.Get(ServiceJournal)
		if err != nil {
			return nil, err
		}
		rules, err := p.config.Market.Rules()
		if err != nil {
			return nil, err
		}
		return service.New(service.Config{
			View:    store,
			Engine:  tx.EngineConfig{Rules: rules},
			Journal: journal.(history.Journal),
			Logger:  p.GetLogger(),
		})
	})
}

// GetMarketService returns the market service from the container.
func (p *Provider) GetMarketService() (*service.Service, error) {
	svc, err := p.container.Get(ServiceMarket)
	if err != nil {
		return nil, err
	}
	return svc.(*service.Service), nil
}

// GetState returns the persisted state store.
func (p *Provider) GetState() (*state.Store, error) {
	s, err := p.container.Get(ServiceState)
	if err != nil {
		return nil, err
	}
	return s.(*state.Store), nil
}

// GetLogger returns the process logger.
func (p *Provider) GetLogger() *zap.Logger {
	return p.container.MustGet(ServiceLogger).(*zap.Logger)
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
