package tx

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/core/ledger/state"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Action   Action
	Key      keylet.Keylet
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state (state before deletion for erases)
}

// ApplyStateTable wraps a view and buffers every modification made by one
// transaction. Nothing reaches the base until Apply is called; dropping the
// table discards the transaction.
type ApplyStateTable struct {
	base  sle.LedgerView
	items map[[32]byte]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view
func NewApplyStateTable(base sle.LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Action:   ActionCache,
			Key:      k,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action != ActionErase {
			return state.ErrEntryExists
		}
		// Re-inserting a deleted entry becomes a modify
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return state.ErrEntryExists
	}

	t.items[k.Key] = &TrackedEntry{
		Action:  ActionInsert,
		Key:     k,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("update erased entry: %w", state.ErrEntryNotFound)
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		// For insert, keep it as insert with new data
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return state.ErrEntryNotFound
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionModify,
		Key:      k,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, exists := t.items[k.Key]; exists {
		switch entry.Action {
		case ActionErase:
			return fmt.Errorf("erase erased entry: %w", state.ErrEntryNotFound)
		case ActionInsert:
			// Inserting then deleting = no change
			delete(t.items, k.Key)
			return nil
		}
		// Current keeps the state before deletion for FinalFields
		entry.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return state.ErrEntryNotFound
	}

	t.items[k.Key] = &TrackedEntry{
		Action:   ActionErase,
		Key:      k,
		Original: original,
		Current:  original,
	}
	return nil
}

// IsErased returns true if the entry at the given key has been erased.
func (t *ApplyStateTable) IsErased(k keylet.Keylet) bool {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action == ActionErase
	}
	return false
}

// Apply commits all changes to the base view and returns the affected nodes.
// When the base implements state.Batcher the changes are written in one batch.
func (t *ApplyStateTable) Apply() ([]AffectedNode, error) {
	keys := make([][32]byte, 0, len(t.items))
	for key := range t.items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i][:], keys[j][:]) < 0 })

	nodes := make([]AffectedNode, 0, len(keys))
	changes := make([]state.Change, 0, len(keys))

	for _, key := range keys {
		entry := t.items[key]
		var (
			node AffectedNode
			err  error
		)
		switch entry.Action {
		case ActionCache:
			continue
		case ActionInsert:
			node, err = buildCreatedNode(key, entry.Current)
			changes = append(changes, state.Change{Key: entry.Key, Data: entry.Current})
		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
			node, err = buildModifiedNode(key, entry.Original, entry.Current)
			changes = append(changes, state.Change{Key: entry.Key, Data: entry.Current})
		case ActionErase:
			node, err = buildDeletedNode(key, entry.Original, entry.Current)
			changes = append(changes, state.Change{Key: entry.Key})
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	if err := t.commit(changes); err != nil {
		return nil, err
	}
	return nodes, nil
}

func (t *ApplyStateTable) commit(changes []state.Change) error {
	if b, ok := t.base.(state.Batcher); ok {
		return b.ApplyBatch(changes)
	}
	for _, c := range changes {
		entry := t.items[c.Key.Key]
		var err error
		switch entry.Action {
		case ActionInsert:
			err = t.base.Insert(c.Key, c.Data)
		case ActionModify:
			err = t.base.Update(c.Key, c.Data)
		case ActionErase:
			err = t.base.Erase(c.Key)
		}
		if err != nil {
			return fmt.Errorf("commit %x: %w", c.Key.Key[:4], err)
		}
	}
	return nil
}

func ledgerIndex(key [32]byte) string {
	return strings.ToUpper(hex.EncodeToString(key[:]))
}

// buildCreatedNode creates metadata for a created entry
func buildCreatedNode(key [32]byte, data []byte) (AffectedNode, error) {
	node := AffectedNode{
		NodeType:        "CreatedNode",
		LedgerEntryType: sle.EntryType(data).String(),
		LedgerIndex:     ledgerIndex(key),
		NewFields:       make(map[string]any),
	}
	fields, err := sle.Fields(data)
	if err != nil {
		return node, err
	}
	for name, value := range fields {
		if !isDefaultValue(value) {
			node.NewFields[name] = value
		}
	}
	return node, nil
}

// buildModifiedNode creates metadata for a modified entry
func buildModifiedNode(key [32]byte, original, current []byte) (AffectedNode, error) {
	node := AffectedNode{
		NodeType:        "ModifiedNode",
		LedgerEntryType: sle.EntryType(current).String(),
		LedgerIndex:     ledgerIndex(key),
		PreviousFields:  make(map[string]any),
	}
	origFields, err := sle.Fields(original)
	if err != nil {
		return node, err
	}
	currFields, err := sle.Fields(current)
	if err != nil {
		return node, err
	}
	node.FinalFields = currFields
	for name, origValue := range origFields {
		if !reflect.DeepEqual(origValue, currFields[name]) {
			node.PreviousFields[name] = origValue
		}
	}
	return node, nil
}

// buildDeletedNode creates metadata for a deleted entry
func buildDeletedNode(key [32]byte, original, current []byte) (AffectedNode, error) {
	node := AffectedNode{
		NodeType:        "DeletedNode",
		LedgerEntryType: sle.EntryType(current).String(),
		LedgerIndex:     ledgerIndex(key),
		PreviousFields:  make(map[string]any),
	}
	origFields, err := sle.Fields(original)
	if err != nil {
		return node, err
	}
	currFields, err := sle.Fields(current)
	if err != nil {
		return node, err
	}
	node.FinalFields = currFields
	// Changes made before the deletion within the same transaction
	for name, origValue := range origFields {
		if !reflect.DeepEqual(origValue, currFields[name]) {
			node.PreviousFields[name] = origValue
		}
	}
	return node, nil
}

func isDefaultValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == "" || val == "0"
	case bool:
		return !val
	case uint64:
		return val == 0
	case int64:
		return val == 0
	case map[string]any:
		return len(val) == 0
	case []any:
		return len(val) == 0
	}
	return false
}
