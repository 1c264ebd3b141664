package testing

import (
	"context"
	"testing"
	"time"

	"github.com/LeJamon/goMarketd/internal/core/amendment"
	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/ledger/genesis"
	"github.com/LeJamon/goMarketd/internal/core/ledger/service"
	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
	"github.com/LeJamon/goMarketd/internal/core/tx"
	_ "github.com/LeJamon/goMarketd/internal/core/tx/all"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// DefaultCutBP is the marketplace cut of a new TestEnv.
const DefaultCutBP = 250

// TestEnv manages an in-memory market for transaction testing. It provides
// a simplified interface for funding accounts, submitting transactions and
// verifying results.
type TestEnv struct {
	t       *testing.T
	view    *state.MemoryView
	clock   *ManualClock
	owner   *Account
	custody *Account

	// Amendment rules - controls which amendments are enabled.
	rulesBuilder *amendment.RulesBuilder

	// svc is rebuilt when the rules change
	svc *service.Service
}

// NewTestEnv creates a test environment owned by the "owner" account with
// DefaultCutBP and an empty whitelist.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	owner := NewAccount("owner")
	custody := NewAccount("custody")
	return NewTestEnvWithConfig(t, &genesis.Config{
		Owner:   owner.Address,
		Custody: custody.Address,
		CutBP:   DefaultCutBP,
	})
}

// NewTestEnvWithConfig creates a test environment from a genesis config.
func NewTestEnvWithConfig(t *testing.T, cfg *genesis.Config) *TestEnv {
	t.Helper()
	view := state.NewMemoryView()
	if err := genesis.Apply(view, cfg); err != nil {
		t.Fatalf("Failed to apply genesis: %v", err)
	}

	owner, custody := &Account{Name: "owner", Address: cfg.Owner}, &Account{Name: "custody", Address: cfg.Custody}
	owner.ID, _ = sle.DecodeAccountID(cfg.Owner)
	custody.ID, _ = sle.DecodeAccountID(cfg.Custody)

	return &TestEnv{
		t:            t,
		view:         view,
		clock:        NewManualClock(),
		owner:        owner,
		custody:      custody,
		rulesBuilder: amendment.NewRulesBuilder(),
	}
}

// Owner returns the market operator.
func (e *TestEnv) Owner() *Account {
	return e.owner
}

// Custody returns the account holding escrowed items and payments.
func (e *TestEnv) Custody() *Account {
	return e.custody
}

// View returns the committed state.
func (e *TestEnv) View() *state.MemoryView {
	return e.view
}

// Service returns the service the environment submits through.
func (e *TestEnv) Service() *service.Service {
	if e.svc == nil {
		svc, err := service.New(service.Config{
			View: e.view,
			Engine: tx.EngineConfig{
				Rules: e.rulesBuilder.Build(),
				Clock: e.clock,
			},
		})
		if err != nil {
			e.t.Fatalf("Failed to create service: %v", err)
		}
		e.svc = svc
	}
	return e.svc
}

// EnableFeature enables an amendment by name.
func (e *TestEnv) EnableFeature(name string) {
	e.t.Helper()
	if err := e.rulesBuilder.EnableByName(name); err != nil {
		e.t.Fatalf("EnableFeature: %v", err)
	}
	e.svc = nil
}

// DisableFeature disables an amendment by name.
func (e *TestEnv) DisableFeature(name string) {
	e.t.Helper()
	if err := e.rulesBuilder.DisableByName(name); err != nil {
		e.t.Fatalf("DisableFeature: %v", err)
	}
	e.svc = nil
}

// Submit applies a transaction at the current clock time.
func (e *TestEnv) Submit(transaction tx.Transaction) TxResult {
	e.t.Helper()
	res, err := e.Service().Submit(context.Background(), transaction)
	if err != nil {
		e.t.Fatalf("Submit: %v", err)
	}
	return newTxResult(res)
}

// Fund credits assets to an account outside of any transaction.
func (e *TestEnv) Fund(acc *Account, assets ...sle.Asset) {
	e.t.Helper()
	gateway := host.NewLedger(e.view)
	for _, a := range assets {
		if err := gateway.Credit(acc.ID, a); err != nil {
			e.t.Fatalf("Fund %s with %s: %v", acc.Name, a, err)
		}
	}
}

// SetContract marks an account as unable to receive pushed transfers.
func (e *TestEnv) SetContract(acc *Account) {
	e.t.Helper()
	if err := host.NewLedger(e.view).SetContract(acc.ID, true); err != nil {
		e.t.Fatalf("SetContract %s: %v", acc.Name, err)
	}
}

// SetRoyalty sets the creator and royalty of a token nonce.
func (e *TestEnv) SetRoyalty(token string, nonce uint64, creator *Account, royaltyBP uint16) {
	e.t.Helper()
	info := sle.TokenInfo{Token: token, Nonce: nonce, RoyaltyBP: royaltyBP, Creator: creator.ID}
	if err := host.NewMetadata(e.view).SetTokenInfo(info); err != nil {
		e.t.Fatalf("SetRoyalty %s/%d: %v", token, nonce, err)
	}
}

// Balance returns the host balance of an account for a token nonce.
func (e *TestEnv) Balance(acc *Account, token string, nonce uint64) amount.Amount {
	e.t.Helper()
	v, err := host.NewLedger(e.view).Balance(acc.ID, token, nonce)
	if err != nil {
		e.t.Fatalf("Balance of %s: %v", acc.Name, err)
	}
	return v
}

// NativeBalance returns the native balance of an account.
func (e *TestEnv) NativeBalance(acc *Account) amount.Amount {
	e.t.Helper()
	return e.Balance(acc, sle.NativeToken, 0)
}

// Claimable returns the escrowed amount of an account for a token nonce.
func (e *TestEnv) Claimable(acc *Account, token string, nonce uint64) amount.Amount {
	e.t.Helper()
	gateway := host.NewLedger(e.view)
	v, err := escrow.New(e.view, gateway, e.custody.ID).Amount(acc.ID, token, nonce)
	if err != nil {
		e.t.Fatalf("Claimable of %s: %v", acc.Name, err)
	}
	return v
}

// Auction returns a live auction, or nil.
func (e *TestEnv) Auction(id uint64) *sle.Auction {
	e.t.Helper()
	a, _, err := e.Service().Auction(id)
	if err != nil {
		e.t.Fatalf("Auction %d: %v", id, err)
	}
	return a
}

// Offer returns a live offer, or nil.
func (e *TestEnv) Offer(id uint64) *sle.Offer {
	e.t.Helper()
	o, _, err := e.Service().Offer(id)
	if err != nil {
		e.t.Fatalf("Offer %d: %v", id, err)
	}
	return o
}

// MarketConfig returns the current market config.
func (e *TestEnv) MarketConfig() *sle.MarketConfig {
	e.t.Helper()
	cfg, err := sle.ReadMarketConfig(e.view)
	if err != nil {
		e.t.Fatalf("MarketConfig: %v", err)
	}
	return cfg
}

// Now returns the current time in seconds.
func (e *TestEnv) Now() uint64 {
	return host.Timestamp(e.clock)
}

// AdvanceTime moves the clock forward.
func (e *TestEnv) AdvanceTime(d time.Duration) {
	e.clock.Advance(d)
}

// SetTime sets the clock to a unix timestamp in seconds.
func (e *TestEnv) SetTime(unix uint64) {
	e.clock.Set(time.Unix(int64(unix), 0).UTC())
}

// Clock returns the environment clock.
func (e *TestEnv) Clock() *ManualClock {
	return e.clock
}
