package tx

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/amendment"
	"github.com/LeJamon/goMarketd/internal/core/escrow"
	"github.com/LeJamon/goMarketd/internal/core/host"
	"github.com/LeJamon/goMarketd/internal/core/settlement"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	crypto "github.com/LeJamon/goMarketd/internal/crypto/common"
)

// Validation constants
const (
	// MaxMemoSize is the maximum total size of memos (in bytes, hex decoded)
	MaxMemoSize = 1024
)

// Engine applies marketplace transactions one at a time against a view.
type Engine struct {
	mu     sync.Mutex
	view   sle.LedgerView
	config EngineConfig
	log    *zap.Logger
}

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// Rules contains the enabled features.
	// If nil, the default-yes features are enabled.
	Rules *amendment.Rules

	// Clock supplies the current time. Defaults to the system clock.
	Clock host.Clock

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// ApplyResult contains the result of applying a transaction
type ApplyResult struct {
	// Result is the transaction result code
	Result Result `json:"result"`

	// Applied indicates if the transaction changed state
	Applied bool `json:"applied"`

	// Hash identifies the transaction
	Hash string `json:"hash,omitempty"`

	// Metadata contains the changes made by the transaction
	Metadata *Metadata `json:"meta,omitempty"`

	// Message is a human-readable result message
	Message string `json:"message"`

	// Timestamp is the time the transaction was applied at. Zero when it
	// failed preflight.
	Timestamp uint64 `json:"timestamp,omitempty"`
}

// Metadata tracks changes made by a transaction
type Metadata struct {
	// AffectedNodes lists all nodes that were created, modified, or deleted
	AffectedNodes []AffectedNode

	// TransactionResult is the result code
	TransactionResult Result

	// Events in emission order
	Events []Event

	// CreatedID is the id of the auction or offer created, if any
	CreatedID uint64

	// Claim is the outcome of an EscrowClaim
	Claim *escrow.ClaimResult

	// Settlement is the payout of a sale
	Settlement *settlement.Distribution
}

// AffectedNode is an alias for sle.AffectedNode
type AffectedNode = sle.AffectedNode

// MarshalJSON renders the metadata with nested affected nodes sorted by index.
func (m Metadata) MarshalJSON() ([]byte, error) {
	output := make(map[string]any)

	sortedNodes := make([]AffectedNode, len(m.AffectedNodes))
	copy(sortedNodes, m.AffectedNodes)
	sort.Slice(sortedNodes, func(i, j int) bool {
		return sortedNodes[i].LedgerIndex < sortedNodes[j].LedgerIndex
	})

	affectedNodes := make([]map[string]any, 0, len(sortedNodes))
	for _, node := range sortedNodes {
		affectedNodes = append(affectedNodes, affectedNodeToJSON(node))
	}
	output["AffectedNodes"] = affectedNodes
	output["TransactionResult"] = m.TransactionResult.String()

	if len(m.Events) > 0 {
		output["events"] = m.Events
	}
	if m.CreatedID != 0 {
		output["created_id"] = m.CreatedID
	}
	if m.Claim != nil {
		output["claim"] = m.Claim
	}
	if m.Settlement != nil {
		output["settlement"] = m.Settlement
	}

	return json.Marshal(output)
}

func affectedNodeToJSON(n AffectedNode) map[string]any {
	inner := make(map[string]any)
	if n.FinalFields != nil {
		inner["FinalFields"] = n.FinalFields
	}
	inner["LedgerEntryType"] = n.LedgerEntryType
	inner["LedgerIndex"] = n.LedgerIndex
	if len(n.PreviousFields) > 0 {
		inner["PreviousFields"] = n.PreviousFields
	}
	if n.NewFields != nil {
		inner["NewFields"] = n.NewFields
	}
	return map[string]any{n.NodeType: inner}
}

// NewEngine creates a new transaction engine
func NewEngine(view sle.LedgerView, config EngineConfig) *Engine {
	if config.Clock == nil {
		config.Clock = host.SystemClock{}
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Engine{
		view:   view,
		config: config,
		log:    config.Logger.Named("engine"),
	}
}

// rules returns the amendment rules, defaulting to the default-yes set if nil.
func (e *Engine) rules() *amendment.Rules {
	if e.config.Rules != nil {
		return e.config.Rules
	}
	return amendment.DefaultRules()
}

// computeTransactionHash computes SHA512Half of the "TXN\x00" prefix, the
// JSON form of the transaction and the apply timestamp.
func computeTransactionHash(tx Transaction, timestamp uint64) ([32]byte, error) {
	txBytes, err := json.Marshal(tx)
	if err != nil {
		return [32]byte{}, err
	}
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, timestamp)
	return crypto.Sha512Half([]byte{0x54, 0x58, 0x4E, 0x00}, txBytes, ts), nil
}

// Apply processes a transaction. On tesSUCCESS its changes are committed to
// the engine's view; on any other result the view is left untouched.
func (e *Engine) Apply(tx Transaction) ApplyResult {
	// Step 1: Preflight checks (shape validation, no state)
	account, result := e.preflight(tx)
	if !result.IsSuccess() {
		return notApplied(result, nil)
	}

	appliable, ok := tx.(Appliable)
	if !ok {
		return notApplied(TemUNKNOWN, nil)
	}

	// Step 2: Serialize
	e.mu.Lock()
	defer e.mu.Unlock()

	now := host.Timestamp(e.config.Clock)
	txHash, err := computeTransactionHash(tx, now)
	if err != nil {
		e.log.Error("hash transaction", zap.Error(err))
		return notApplied(TefINTERNAL, nil).at(now)
	}

	// Step 3: Sandbox
	table := NewApplyStateTable(e.view)

	metadata := &Metadata{TransactionResult: TesSUCCESS}
	result = e.doApply(table, tx, appliable, account, now, txHash, metadata)
	metadata.TransactionResult = result

	log := e.log.With(
		zap.String("type", tx.TxType().String()),
		zap.String("account", tx.GetCommon().Account),
		zap.String("result", result.String()),
	)
	if !result.IsSuccess() {
		log.Debug("transaction rejected")
		return notApplied(result, txHash[:]).at(now)
	}

	// Step 7: Commit
	nodes, err := table.Apply()
	if err != nil {
		log.Error("commit transaction", zap.Error(err))
		return notApplied(TefBAD_LEDGER, txHash[:]).at(now)
	}
	metadata.AffectedNodes = nodes
	log.Debug("transaction applied", zap.Int("affected", len(nodes)), zap.Int("events", len(metadata.Events)))

	return ApplyResult{
		Result:    result,
		Applied:   true,
		Hash:      strings.ToUpper(hex.EncodeToString(txHash[:])),
		Metadata:  metadata,
		Message:   result.Message(),
		Timestamp: now,
	}
}

func (r ApplyResult) at(now uint64) ApplyResult {
	r.Timestamp = now
	return r
}

func notApplied(result Result, hash []byte) ApplyResult {
	r := ApplyResult{
		Result:  result,
		Message: result.Message(),
	}
	if hash != nil {
		r.Hash = strings.ToUpper(hex.EncodeToString(hash))
	}
	return r
}

func (e *Engine) doApply(table *ApplyStateTable, tx Transaction, appliable Appliable, account [20]byte, now uint64, txHash [32]byte, metadata *Metadata) Result {
	// Step 4: Pause gate
	cfg, err := sle.ReadMarketConfig(table)
	if err != nil {
		e.log.Error("read market config", zap.Error(err))
		return TefBAD_LEDGER
	}
	if cfg.Paused && !tx.TxType().IsAdmin() {
		return TecPAUSED
	}

	ctx := newApplyContext(table, account, cfg, e.config, e.log)
	ctx.Timestamp = now
	ctx.TxHash = txHash
	ctx.Metadata = metadata

	// Step 5: Custody
	if p := tx.GetCommon().Payment; p != nil {
		payment := *p
		if err := ctx.Ledger.Transfer(account, cfg.Custody, payment); err != nil {
			if errors.Is(err, host.ErrInsufficientBalance) {
				return TecUNFUNDED
			}
			e.log.Error("take payment into custody", zap.Error(err))
			return TefINTERNAL
		}
		ctx.Payment = &payment
	}

	// Step 6: Apply
	return appliable.Apply(ctx)
}

// preflight validates the transaction without reading state and returns the
// decoded caller.
func (e *Engine) preflight(tx Transaction) ([20]byte, Result) {
	var account [20]byte
	common := tx.GetCommon()

	if common.Account == "" {
		return account, TemBAD_SRC_ACCOUNT
	}
	account, err := sle.DecodeAccountID(common.Account)
	if err != nil {
		return account, TemBAD_SRC_ACCOUNT
	}

	if common.TransactionType == "" {
		return account, TemINVALID
	}
	if !IsRegistered(tx.TxType()) {
		return account, TemUNKNOWN
	}
	if common.TransactionType != tx.TxType().String() {
		return account, TemINVALID
	}

	// Amendment check
	for _, featureID := range tx.RequiredAmendments() {
		if !e.rules().Enabled(featureID) {
			return account, TemDISABLED
		}
	}

	if p := common.Payment; p != nil {
		if !tx.TxType().IsPayable() {
			return account, TemBAD_PAYMENT
		}
		if err := p.Validate(); err != nil {
			return account, TemBAD_ASSET
		}
		if p.Amount.IsZero() {
			return account, TemBAD_AMOUNT
		}
	}

	if result := validateMemos(common); result != TesSUCCESS {
		return account, result
	}

	// Transaction-specific validation
	if err := tx.Validate(); err != nil {
		return account, parseValidationError(err)
	}

	return account, TesSUCCESS
}

// parseValidationError extracts a result code from a validation error message.
// If the message starts with a known code (e.g., "temBAD_PRICE:"), that code
// is returned. Otherwise it returns TemINVALID.
func parseValidationError(err error) Result {
	msg := err.Error()
	code := msg
	if i := strings.IndexAny(msg, ": "); i >= 0 {
		code = msg[:i]
	}
	if r, ok := ResultFromName(code); ok && r.IsTem() {
		return r
	}
	return TemINVALID
}

func validateMemos(common *Common) Result {
	totalSize := 0
	for _, w := range common.Memos {
		for _, field := range []string{w.Memo.MemoType, w.Memo.MemoData} {
			if field == "" {
				continue
			}
			b, err := hex.DecodeString(field)
			if err != nil {
				return TemINVALID
			}
			totalSize += len(b)
		}
	}
	if totalSize > MaxMemoSize {
		return TemINVALID
	}
	return TesSUCCESS
}
