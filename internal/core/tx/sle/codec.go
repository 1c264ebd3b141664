package sle

import (
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"

	"github.com/LeJamon/goMarketd/internal/core/ledger/entry"
	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/ugorji/go/codec"
)

// ErrShortEntry is returned when serialized data is too short to carry an entry type.
var ErrShortEntry = errors.New("serialized entry too short")

var cborHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return h
}()

// Marshal serializes a record as a 2-byte big-endian entry type followed by
// its CBOR body.
func Marshal(t entry.Type, v any) ([]byte, error) {
	var body []byte
	// NewEncoderBytes writes from the start of the slice
	if err := codec.NewEncoderBytes(&body, cborHandle).Encode(v); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t, err)
	}
	buf := make([]byte, 2, 2+len(body))
	binary.BigEndian.PutUint16(buf, uint16(t))
	return append(buf, body...), nil
}

// Unmarshal decodes a record produced by Marshal into v.
func Unmarshal(data []byte, v any) error {
	if len(data) < 2 {
		return ErrShortEntry
	}
	dec := codec.NewDecoderBytes(data[2:], cborHandle)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", EntryType(data), err)
	}
	return nil
}

// EntryType returns the entry type a serialized record was written with.
func EntryType(data []byte) entry.Type {
	if len(data) < 2 {
		return 0
	}
	return entry.Type(binary.BigEndian.Uint16(data))
}

// Fields decodes a serialized record into a generic field map for metadata.
// Account ids are rendered as addresses and amounts as decimal strings.
func Fields(data []byte) (map[string]any, error) {
	if len(data) < 2 {
		return nil, ErrShortEntry
	}
	var raw map[string]interface{}
	dec := codec.NewDecoderBytes(data[2:], cborHandle)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = normalizeField(v)
	}
	return out, nil
}

func normalizeField(v any) any {
	switch val := v.(type) {
	case []byte:
		if len(val) == 20 && !isDigits(val) {
			var id [20]byte
			copy(id[:], val)
			return AddressOrEmpty(id)
		}
		return string(val)
	case map[string]interface{}:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = normalizeField(inner)
		}
		return out
	case []interface{}:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = normalizeField(inner)
		}
		return out
	default:
		return v
	}
}

func isDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Read loads and decodes the entry at k. It returns (nil, nil) if absent.
func Read[T any](view LedgerView, k keylet.Keylet) (*T, error) {
	data, err := view.Read(k)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var v T
	if err := Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Put writes v at k, inserting or updating as needed.
func Put(view LedgerView, k keylet.Keylet, v any) error {
	data, err := Marshal(k.Type, v)
	if err != nil {
		return err
	}
	exists, err := view.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return view.Update(k, data)
	}
	return view.Insert(k, data)
}

// Insert writes v at k, failing if an entry is already there.
func Insert(view LedgerView, k keylet.Keylet, v any) error {
	data, err := Marshal(k.Type, v)
	if err != nil {
		return err
	}
	return view.Insert(k, data)
}
