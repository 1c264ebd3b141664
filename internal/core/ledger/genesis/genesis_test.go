package genesis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/crypto"
)

func testConfig() *Config {
	return &Config{
		Owner:     crypto.DeriveKeyPair("owner").Address(),
		Custody:   crypto.DeriveKeyPair("custody").Address(),
		CutBP:     250,
		Whitelist: []string{"NATIVE"},
		Accounts: []Account{
			{Address: crypto.DeriveKeyPair("alice").Address(), Balances: []sle.Asset{sle.Native(1000)}},
			{Address: crypto.DeriveKeyPair("vault").Address(), Contract: true},
		},
		Tokens: []Token{
			{Token: "ART-abcdef", Nonce: 1, Creator: crypto.DeriveKeyPair("creator").Address(), RoyaltyBP: 1000},
		},
	}
}

func TestApply(t *testing.T) {
	view := state.NewMemoryView()
	cfg := testConfig()
	require.NoError(t, Apply(view, cfg))

	market, err := sle.ReadMarketConfig(view)
	require.NoError(t, err)
	assert.Equal(t, uint16(250), market.CutBP)
	assert.Equal(t, uint32(1), market.Version)
	assert.Equal(t, crypto.DeriveKeyPair("owner").AccountID, market.Owner)
	assert.True(t, market.IsWhitelisted("NATIVE"))
	assert.False(t, market.IsWhitelisted("USDC-c76f1f"))

	gateway := host.NewLedger(view)
	bal, err := gateway.Balance(crypto.DeriveKeyPair("alice").AccountID, "NATIVE", 0)
	require.NoError(t, err)
	assert.True(t, bal.Equal(amount.New(1000)))

	direct, err := gateway.CanReceiveDirect(crypto.DeriveKeyPair("vault").AccountID)
	require.NoError(t, err)
	assert.False(t, direct)

	royalty, err := host.NewMetadata(view).RoyaltyBP("ART-abcdef", 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(1000), royalty)

	assert.ErrorIs(t, Apply(view, cfg), ErrAlreadyInitialized)
}

func TestApplyIsAtomic(t *testing.T) {
	view := state.NewMemoryView()
	cfg := testConfig()
	// a royalty without a creator fails after the config and balances are staged
	cfg.Tokens = append(cfg.Tokens, Token{Token: "ART-abcdef", Nonce: 2, RoyaltyBP: 500})

	require.ErrorIs(t, Apply(view, cfg), host.ErrNoCreator)
	assert.Equal(t, 0, view.Len())

	require.NoError(t, Apply(view, testConfig()))
	_, err := sle.ReadMarketConfig(view)
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"no owner", func(c *Config) { c.Owner = "" }, ErrMissingOwner},
		{"no custody", func(c *Config) { c.Custody = "" }, ErrMissingCustody},
		{"zero cut", func(c *Config) { c.CutBP = 0 }, ErrBadCut},
		{"full cut", func(c *Config) { c.CutBP = 10000 }, ErrBadCut},
		{"bad whitelist", func(c *Config) { c.Whitelist = []string{"nope"} }, sle.ErrBadToken},
		{"bad native nonce", func(c *Config) {
			c.Accounts[0].Balances = []sle.Asset{{Token: "NATIVE", Nonce: 1, Amount: amount.New(1)}}
		}, sle.ErrBadNativeNonce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	data, err := json.Marshal(testConfig())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testConfig(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
