package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
	"github.com/LeJamon/goMarketd/internal/storage/compression"
	"github.com/LeJamon/goMarketd/internal/storage/database"
)

// DefaultCacheSize is the number of decoded entries kept by a Store.
const DefaultCacheSize = 4096

// StoreConfig configures a Store.
type StoreConfig struct {
	// CacheSize is the number of entries kept in the read cache.
	CacheSize int
	// Compression names a registered compressor ("none" or "lz4").
	Compression string
}

// Store is a view persisted in a key-value database. Values are compressed
// on write, and recently used entries are cached decompressed. The store
// is safe for concurrent readers while one writer commits.
type Store struct {
	db         database.DB
	compressor compression.Compressor
	cache      *lru.Cache[[32]byte, []byte]

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// NewStore creates a store over db.
func NewStore(db database.DB, cfg StoreConfig) (*Store, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Compression == "" {
		cfg.Compression = "none"
	}

	compressor, err := compression.Get(cfg.Compression)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[[32]byte, []byte](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Store{db: db, compressor: compressor, cache: cache}, nil
}

func (s *Store) Read(k keylet.Keylet) ([]byte, error) {
	if data, ok := s.cache.Get(k.Key); ok {
		s.count(true)
		return append([]byte(nil), data...), nil
	}
	s.count(false)

	raw, err := s.db.Read(context.Background(), k.Key[:])
	if err != nil {
		if errors.Is(err, database.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s %X: %w", k.Type, k.Key[:4], err)
	}

	data, err := s.compressor.Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("decompress %X: %w", k.Key[:4], err)
	}
	s.cache.Add(k.Key, data)
	return append([]byte(nil), data...), nil
}

func (s *Store) Exists(k keylet.Keylet) (bool, error) {
	data, err := s.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

func (s *Store) Insert(k keylet.Keylet, data []byte) error {
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}
	return s.write(k, data)
}

func (s *Store) Update(k keylet.Keylet, data []byte) error {
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEntryNotFound
	}
	return s.write(k, data)
}

func (s *Store) Erase(k keylet.Keylet) error {
	exists, err := s.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEntryNotFound
	}
	s.cache.Remove(k.Key)
	return s.db.Delete(context.Background(), k.Key[:])
}

func (s *Store) write(k keylet.Keylet, data []byte) error {
	compressed, err := s.compressor.Compress(data)
	if err != nil {
		return err
	}
	// invalidate first so a failed write never leaves a stale cache entry
	s.cache.Remove(k.Key)
	return s.db.Write(context.Background(), k.Key[:], compressed)
}

// ApplyBatch commits changes in one database batch.
func (s *Store) ApplyBatch(changes []Change) error {
	ops := make([]database.BatchOperation, 0, len(changes))
	for _, c := range changes {
		key := append([]byte(nil), c.Key.Key[:]...)
		if c.Data == nil {
			ops = append(ops, database.BatchOperation{Type: database.BatchDelete, Key: key})
			continue
		}
		compressed, err := s.compressor.Compress(c.Data)
		if err != nil {
			return err
		}
		ops = append(ops, database.BatchOperation{Type: database.BatchPut, Key: key, Value: compressed})
	}

	for _, c := range changes {
		s.cache.Remove(c.Key.Key)
	}
	if err := s.db.Batch(context.Background(), ops); err != nil {
		return fmt.Errorf("commit batch of %d: %w", len(ops), err)
	}
	return nil
}

func (s *Store) count(hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}

// Stats returns cache hit and miss counts.
func (s *Store) Stats() (hits, misses uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}
