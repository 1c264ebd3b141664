// Package service ties the transaction engine to a persistent view and the
// history journal, and serves the read-only marketplace queries.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/LeJamon/goMarketd/internal/core/tx"
	"github.com/LeJamon/goMarketd/internal/core/tx/sle"
	"github.com/LeJamon/goMarketd/internal/storage/history"
)

// ErrNilView is returned by New without a view.
var ErrNilView = errors.New("service requires a ledger view")

// Config holds configuration for the Service
type Config struct {
	// View is the committed state, usually a state.Store
	View sle.LedgerView

	// Engine configures rules, clock and logger of the transaction engine
	Engine tx.EngineConfig

	// Journal records submitted transactions (optional)
	Journal history.Journal

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// Service runs transactions and answers queries over one view.
type Service struct {
	view    sle.LedgerView
	engine  *tx.Engine
	journal history.Journal
	log     *zap.Logger
}

// New creates a Service
func New(cfg Config) (*Service, error) {
	if cfg.View == nil {
		return nil, ErrNilView
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Journal == nil {
		cfg.Journal = history.Nop{}
	}
	if cfg.Engine.Logger == nil {
		cfg.Engine.Logger = cfg.Logger
	}
	return &Service{
		view:    cfg.View,
		engine:  tx.NewEngine(cfg.View, cfg.Engine),
		journal: cfg.Journal,
		log:     cfg.Logger.Named("service"),
	}, nil
}

// Submit applies a transaction and journals the outcome. The returned error
// reports journal failures only; rejected transactions are reported in the
// result.
func (s *Service) Submit(ctx context.Context, t tx.Transaction) (tx.ApplyResult, error) {
	res := s.engine.Apply(t)

	common := t.GetCommon()
	fields := []zap.Field{
		zap.String("type", t.TxType().String()),
		zap.String("account", common.Account),
		zap.String("result", res.Result.String()),
		zap.String("hash", res.Hash),
	}
	if res.Applied {
		s.log.Info("transaction applied", fields...)
	} else {
		s.log.Info("transaction rejected", append(fields, zap.String("message", res.Message))...)
	}

	if err := s.record(ctx, t, res); err != nil {
		s.log.Error("journal transaction", append(fields, zap.Error(err))...)
		return res, err
	}
	return res, nil
}

// SubmitJSON decodes a transaction and submits it.
func (s *Service) SubmitJSON(ctx context.Context, data []byte) (tx.ApplyResult, error) {
	t, err := tx.FromJSON(data)
	if err != nil {
		return tx.ApplyResult{}, fmt.Errorf("decode transaction: %w", err)
	}
	return s.Submit(ctx, t)
}

func (s *Service) record(ctx context.Context, t tx.Transaction, res tx.ApplyResult) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	r := &history.Record{
		Hash:      res.Hash,
		Account:   t.GetCommon().Account,
		TxType:    t.TxType().String(),
		Result:    res.Result.String(),
		Applied:   res.Applied,
		Timestamp: res.Timestamp,
		Tx:        raw,
	}
	if res.Metadata != nil {
		r.CreatedID = res.Metadata.CreatedID
		if r.Meta, err = json.Marshal(res.Metadata); err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
	}
	return s.journal.Append(ctx, r)
}

// History lists journaled transactions.
func (s *Service) History(ctx context.Context, f history.Filter) ([]history.Record, error) {
	return s.journal.List(ctx, f)
}

// View returns the committed state the service runs against.
func (s *Service) View() sle.LedgerView {
	return s.view
}
