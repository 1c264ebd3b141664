package testing

import (
	"github.com/LeJamon/goMarketd/internal/core/tx"
)

// TxResult represents the result of applying a transaction.
type TxResult struct {
	// Code is the transaction engine result code (e.g., "tesSUCCESS").
	Code string

	// Result is the typed result code.
	Result tx.Result

	// Success indicates whether the transaction was applied.
	Success bool

	// Message provides additional details about the result.
	Message string

	// Metadata is set for applied transactions.
	Metadata *tx.Metadata
}

func newTxResult(r tx.ApplyResult) TxResult {
	return TxResult{
		Code:     r.Result.String(),
		Result:   r.Result,
		Success:  r.Applied,
		Message:  r.Message,
		Metadata: r.Metadata,
	}
}

// CreatedID returns the id of the auction or offer the transaction created.
func (r TxResult) CreatedID() uint64 {
	if r.Metadata == nil {
		return 0
	}
	return r.Metadata.CreatedID
}

// Events returns the events with the given name.
func (r TxResult) Events(name string) []tx.Event {
	if r.Metadata == nil {
		return nil
	}
	return r.Metadata.EventsNamed(name)
}

// IsSuccess reports whether the result is tesSUCCESS.
func (r TxResult) IsSuccess() bool {
	return r.Result.IsSuccess()
}

// IsMalformed reports whether the transaction failed preflight.
func (r TxResult) IsMalformed() bool {
	return r.Result.IsTem()
}

// IsRejected reports whether the transaction was rejected against state.
func (r TxResult) IsRejected() bool {
	return r.Result.IsTec()
}
