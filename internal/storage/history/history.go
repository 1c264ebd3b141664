// Package history journals every submitted transaction together with its
// result and metadata. The journal is append-only and is never read by the
// engine; it backs the history queries of the CLI.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Driver names accepted by the [history] config section.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// DefaultLimit bounds List when no limit is given.
const DefaultLimit = 50

// Record is one journaled transaction.
type Record struct {
	ID         uuid.UUID       `json:"id"`
	Hash       string          `json:"hash"`
	Account    string          `json:"account"`
	TxType     string          `json:"tx_type"`
	Result     string          `json:"result"`
	Applied    bool            `json:"applied"`
	Timestamp  uint64          `json:"timestamp"`
	CreatedID  uint64          `json:"created_id,omitempty"`
	Tx         json.RawMessage `json:"tx"`
	Meta       json.RawMessage `json:"meta,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Filter selects records for List. Zero values match everything.
type Filter struct {
	Account string
	TxType  string
	Limit   int
}

// Journal stores transaction records.
type Journal interface {
	// Append stores r, assigning an id and a recording time when unset.
	Append(ctx context.Context, r *Record) error

	// Get returns the latest record with the given hash.
	Get(ctx context.Context, hash string) (*Record, error)

	// List returns matching records, newest first.
	List(ctx context.Context, f Filter) ([]Record, error)

	Close() error
}

// Config configures a journal.
type Config struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// Open opens the journal named by cfg.Driver and prepares its schema.
func Open(ctx context.Context, cfg Config) (Journal, error) {
	switch cfg.Driver {
	case DriverNone, "":
		return Nop{}, nil
	case DriverSQLite:
		return openSQL(ctx, sqliteDialect, cfg)
	case DriverPostgres:
		return openSQL(ctx, postgresDialect, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Nop discards every record.
type Nop struct{}

func (Nop) Append(context.Context, *Record) error { return nil }

func (Nop) Get(context.Context, string) (*Record, error) { return nil, ErrNotFound }

func (Nop) List(context.Context, Filter) ([]Record, error) { return nil, nil }

func (Nop) Close() error { return nil }
