package di

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/config"
	"github.com/LeJamon/goMarketd/internal/core/ledger/genesis"
	"github.com/LeJamon/goMarketd/internal/crypto"
	"github.com/LeJamon/goMarketd/internal/storage/database"
	_ "github.com/LeJamon/goMarketd/internal/storage/database/bbolt"
	"github.com/LeJamon/goMarketd/internal/storage/history"
)

type closer struct {
	name  string
	order *[]string
	err   error
}

func (c *closer) Close() error {
	*c.order = append(*c.order, c.name)
	return c.err
}

func TestContainerLazyBuild(t *testing.T) {
	c := New()
	calls := 0
	c.RegisterBuilder("a", func(*Container) (interface{}, error) {
		calls++
		return "built", nil
	})

	assert.True(t, c.Has("a"))
	v, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "built", v)
	_, err = c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = c.Get("missing")
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Panics(t, func() { c.MustGet("missing") })
}

func TestContainerBuilderDependencies(t *testing.T) {
	c := New()
	c.Register("base", 2)
	c.RegisterBuilder("derived", func(c *Container) (interface{}, error) {
		base, err := c.Get("base")
		if err != nil {
			return nil, err
		}
		return base.(int) * 21, nil
	})
	v, err := c.Get("derived")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, []string{"base", "derived"}, c.ServiceNames())
}

func TestContainerCloseOrder(t *testing.T) {
	var order []string
	c := New()
	c.RegisterBuilder("first", func(*Container) (interface{}, error) {
		return &closer{name: "first", order: &order}, nil
	})
	c.RegisterBuilder("second", func(c *Container) (interface{}, error) {
		if _, err := c.Get("first"); err != nil {
			return nil, err
		}
		return &closer{name: "second", order: &order, err: errors.New("boom")}, nil
	})

	_, err := c.Get("second")
	require.NoError(t, err)

	err = c.Close()
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestProviderWiresMarket(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Database: config.DatabaseConfig{Backend: database.BackendBBolt, Path: filepath.Join(dir, "db"), Compression: "lz4"},
		History:  history.Config{Driver: history.DriverSQLite, DSN: filepath.Join(dir, "history.db")},
	}

	c := New()
	p := NewProvider(c, cfg)
	require.NoError(t, p.RegisterAll(nil))
	defer c.Close()

	store, err := p.GetState()
	require.NoError(t, err)
	owner := crypto.DeriveKeyPair("owner").Address()
	custody := crypto.DeriveKeyPair("custody").Address()
	require.NoError(t, genesis.Apply(store, &genesis.Config{Owner: owner, Custody: custody, CutBP: 100}))

	svc, err := p.GetMarketService()
	require.NoError(t, err)
	mc, err := svc.Config()
	require.NoError(t, err)
	assert.Equal(t, uint16(100), mc.CutBP)

	records, err := svc.History(context.Background(), history.Filter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}
