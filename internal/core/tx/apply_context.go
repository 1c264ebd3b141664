package tx

import (
	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/amendment"
	"github.com/LeJamon/goMarketd/internal/core/amount"
	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/settlement"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// ApplyContext provides all the state and helpers needed to apply a transaction.
// It is passed to Appliable.Apply() instead of individual parameters.
type ApplyContext struct {
	// View provides read/write access to state (the ApplyStateTable)
	View sle.LedgerView

	// AccountID is the decoded caller
	AccountID [20]byte

	// Timestamp is the current time in seconds
	Timestamp uint64

	// Payment is the value attached to the call, already held in custody.
	// nil when nothing was attached.
	Payment *sle.Asset

	// Market is the operator configuration as read at the start of the transaction
	Market *sle.MarketConfig

	// Config holds engine configuration
	Config EngineConfig

	// TxHash is the hash of the current transaction
	TxHash [32]byte

	// Metadata collects events and results for the caller
	Metadata *Metadata

	Ledger    *host.Ledger
	Tokens    *host.Metadata
	Escrow    *escrow.Ledger
	Deliverer *settlement.Deliverer

	Log *zap.Logger
}

func newApplyContext(view sle.LedgerView, account [20]byte, cfg *sle.MarketConfig, config EngineConfig, log *zap.Logger) *ApplyContext {
	gateway := host.NewLedger(view)
	esc := escrow.New(view, gateway, cfg.Custody)
	return &ApplyContext{
		View:      view,
		AccountID: account,
		Market:    cfg,
		Config:    config,
		Ledger:    gateway,
		Tokens:    host.NewMetadata(view),
		Escrow:    esc,
		Deliverer: &settlement.Deliverer{Gateway: gateway, Escrow: esc, Custody: cfg.Custody},
		Log:       log,
	}
}

// Rules returns the amendment rules, defaulting to the default-yes set if nil.
func (ctx *ApplyContext) Rules() *amendment.Rules {
	if ctx.Config.Rules != nil {
		return ctx.Config.Rules
	}
	return amendment.DefaultRules()
}

// Custody returns the account holding escrowed items and payments.
func (ctx *ApplyContext) Custody() [20]byte {
	return ctx.Market.Custody
}

// PaymentAmount returns the attached amount, or zero.
func (ctx *ApplyContext) PaymentAmount() amount.Amount {
	if ctx.Payment == nil {
		return amount.Zero
	}
	return ctx.Payment.Amount
}

// Emit appends an event to the transaction metadata.
func (ctx *ApplyContext) Emit(name string, attrs Attrs) {
	ctx.Metadata.Events = append(ctx.Metadata.Events, Event{Name: name, Attrs: attrs})
	ctx.Log.Debug("event", zap.String("name", name), zap.Any("attrs", attrs))
}

// Deliver pays v out of custody and records escrow credits as events.
func (ctx *ApplyContext) Deliver(recipient [20]byte, token string, nonce uint64, v amount.Amount) (settlement.Path, error) {
	path, err := ctx.Deliverer.Deliver(recipient, token, nonce, v)
	if err != nil {
		return path, err
	}
	if path == settlement.PathEscrow {
		ctx.emitEscrowCredited(recipient, token, nonce, v)
	}
	return path, nil
}

// Settle runs a sale through the settlement engine and stores the
// distribution in the metadata.
func (ctx *ApplyContext) Settle(s settlement.Sale) (settlement.Distribution, error) {
	s.Operator = ctx.Market.Owner
	dist, err := ctx.Deliverer.Settle(s)
	if err != nil {
		return dist, err
	}
	for _, d := range dist.Deliveries {
		if d.Path == settlement.PathEscrow {
			ctx.Emit(EventEscrowCredited, Attrs{
				"recipient": d.Recipient,
				"token":     d.Token,
				"nonce":     d.Nonce,
				"amount":    d.Amount,
			})
		}
	}
	ctx.Metadata.Settlement = &dist
	return dist, nil
}

func (ctx *ApplyContext) emitEscrowCredited(recipient [20]byte, token string, nonce uint64, v amount.Amount) {
	ctx.Emit(EventEscrowCredited, Attrs{
		"recipient": sle.AddressOrEmpty(recipient),
		"token":     token,
		"nonce":     nonce,
		"amount":    v,
	})
}

// Address renders an account id for events.
func Address(id [20]byte) string {
	return sle.AddressOrEmpty(id)
}
