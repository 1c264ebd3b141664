package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type sqlJournal struct {
	dialect dialect

	mu sync.RWMutex
	db *sql.DB
}

func openSQL(ctx context.Context, d dialect, cfg Config) (*sqlJournal, error) {
	if cfg.DSN == "" {
		return nil, newError("open", "dsn is required", nil)
	}
	db, err := sql.Open(d.driver, cfg.DSN)
	if err != nil {
		return nil, newError("open", "failed to open database", err)
	}
	if d.singleConn {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, newError("open", "failed to ping database", err)
	}
	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, newError("open", "failed to initialize schema", err)
		}
	}
	return &sqlJournal{dialect: d, db: db}, nil
}

func (j *sqlJournal) conn() (*sql.DB, error) {
	if j.db == nil {
		return nil, ErrClosed
	}
	return j.db, nil
}

func (j *sqlJournal) Append(ctx context.Context, r *Record) error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	db, err := j.conn()
	if err != nil {
		return err
	}

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}
	var meta sql.NullString
	if len(r.Meta) > 0 {
		meta = sql.NullString{String: string(r.Meta), Valid: true}
	}
	applied := 0
	if r.Applied {
		applied = 1
	}

	query := j.dialect.rebind(`INSERT INTO transactions
		(id, hash, account, tx_type, result, applied, ledger_time, created_id, raw_tx, meta, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = db.ExecContext(ctx, query,
		r.ID.String(), r.Hash, r.Account, r.TxType, r.Result, applied,
		int64(r.Timestamp), int64(r.CreatedID), string(r.Tx), meta, r.RecordedAt.UnixNano())
	if err != nil {
		return newError("append", "failed to insert record", err)
	}
	return nil
}

const selectColumns = `SELECT id, hash, account, tx_type, result, applied, ledger_time, created_id, raw_tx, meta, recorded_at
	FROM transactions`

func (j *sqlJournal) Get(ctx context.Context, hash string) (*Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	db, err := j.conn()
	if err != nil {
		return nil, err
	}

	query := j.dialect.rebind(selectColumns + ` WHERE hash = ? ORDER BY seq DESC LIMIT 1`)
	r, err := scanRecord(db.QueryRowContext(ctx, query, hash))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newError("get", "failed to read record", err)
	}
	return r, nil
}

func (j *sqlJournal) List(ctx context.Context, f Filter) ([]Record, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	db, err := j.conn()
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if f.Account != "" {
		where = append(where, "account = ?")
		args = append(args, f.Account)
	}
	if f.TxType != "" {
		where = append(where, "tx_type = ?")
		args = append(args, f.TxType)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := selectColumns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, j.dialect.rebind(query), args...)
	if err != nil {
		return nil, newError("list", "failed to query records", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, newError("list", "failed to scan record", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, newError("list", "failed to iterate records", err)
	}
	return records, nil
}

func (j *sqlJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	if err != nil {
		return newError("close", "failed to close database", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		r          Record
		id         string
		applied    int64
		ledgerTime int64
		createdID  int64
		rawTx      string
		meta       sql.NullString
		recordedAt int64
	)
	err := s.Scan(&id, &r.Hash, &r.Account, &r.TxType, &r.Result, &applied,
		&ledgerTime, &createdID, &rawTx, &meta, &recordedAt)
	if err != nil {
		return nil, err
	}
	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	r.Applied = applied != 0
	r.Timestamp = uint64(ledgerTime)
	r.CreatedID = uint64(createdID)
	r.Tx = []byte(rawTx)
	if meta.Valid {
		r.Meta = []byte(meta.String)
	}
	r.RecordedAt = time.Unix(0, recordedAt).UTC()
	return &r, nil
}
