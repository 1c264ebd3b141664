package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

// Factory creates an empty transaction of one type.
type Factory func() Transaction

var (
	registryMu sync.RWMutex
	factories  = make(map[Type]Factory)
)

// Register makes a transaction type available to FromJSON and the engine.
// Sub-packages call it from init. Registering a type twice panics.
func Register(t Type, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := factories[t]; dup {
		panic(fmt.Sprintf("tx: Register called twice for %s", t))
	}
	factories[t] = f
}

// IsRegistered returns true if a factory exists for t.
func IsRegistered(t Type) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[t]
	return ok
}

// SupportedTypes returns every registered type, sorted by code.
func SupportedTypes() []Type {
	registryMu.RLock()
	defer registryMu.RUnlock()
	types := make([]Type, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// NewFromType creates a new transaction of the given type
func NewFromType(txType Type) (Transaction, error) {
	registryMu.RLock()
	f, ok := factories[txType]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransactionType, txType)
	}
	return f(), nil
}

// FromJSON creates a Transaction from a JSON object
func FromJSON(data []byte) (Transaction, error) {
	// First, unmarshal to get the TransactionType
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, raw.TransactionType)
	}

	tx, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}

	// Unmarshal into the specific type
	if err := json.Unmarshal(data, tx); err != nil {
		return nil, err
	}

	return tx, nil
}
