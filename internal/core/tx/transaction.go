package tx

import (
	"errors"

	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// Common errors
var (
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrPaymentRequired        = errors.New("temBAD_AMOUNT: payment is required")
)

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// GetCommon returns the common transaction fields
	GetCommon() *Common

	// Validate checks the shape of the transaction without reading state.
	// Errors are prefixed with the tem code they map to.
	Validate() error

	// RequiredAmendments returns the features that must be enabled
	// for this transaction type to be valid.
	RequiredAmendments() [][32]byte
}

// Appliable is implemented by transaction types that can apply themselves to
// marketplace state.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Memo represents a memo attached to a transaction
type Memo struct {
	MemoType string `json:"MemoType,omitempty"`
	MemoData string `json:"MemoData,omitempty"`
}

// MemoWrapper wraps a Memo for JSON serialization
type MemoWrapper struct {
	Memo Memo `json:"Memo"`
}

// Common contains fields common to all transaction types
type Common struct {
	// Required fields
	Account         string `json:"Account"`
	TransactionType string `json:"TransactionType"`

	// Payment is the value attached to the call. It is moved into custody
	// before the transaction runs.
	Payment *sle.Asset `json:"Payment,omitempty"`

	Memos []MemoWrapper `json:"Memos,omitempty"`
}

// Validate validates the common fields
func (c *Common) Validate() error {
	if c.Account == "" {
		return errors.New("temBAD_SRC_ACCOUNT: Account is required")
	}
	if c.TransactionType == "" {
		return errors.New("temINVALID: TransactionType is required")
	}
	return nil
}

// RequirePayment fails when no payment is attached.
func (c *Common) RequirePayment() error {
	if c.Payment == nil {
		return ErrPaymentRequired
	}
	return nil
}

// SetPayment attaches a payment.
func (c *Common) SetPayment(p sle.Asset) {
	c.Payment = &p
}

// AddMemo adds a memo to the transaction
func (c *Common) AddMemo(memoType, memoData string) {
	c.Memos = append(c.Memos, MemoWrapper{
		Memo: Memo{MemoType: memoType, MemoData: memoData},
	})
}

// BaseTx provides a base implementation for transactions
type BaseTx struct {
	Common
	txType Type
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.txType
}

// GetCommon returns the common transaction fields
func (b *BaseTx) GetCommon() *Common {
	return &b.Common
}

// Validate validates the base transaction
func (b *BaseTx) Validate() error {
	return b.Common.Validate()
}

// RequiredAmendments returns no required amendments by default.
// Transaction types that require amendments should override this.
func (b *BaseTx) RequiredAmendments() [][32]byte {
	return nil
}

// NewBaseTx creates a new base transaction
func NewBaseTx(txType Type, account string) *BaseTx {
	return &BaseTx{
		Common: Common{
			Account:         account,
			TransactionType: txType.String(),
		},
		txType: txType,
	}
}
