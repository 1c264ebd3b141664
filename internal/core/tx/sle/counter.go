package sle

import "github.com/LeJamon/goMarketd/internal/core/ledger/keylet"

// Counter holds the last id handed out for one entity type.
type Counter struct {
	Last uint64 `codec:"Last"`
}

// NextID increments the named counter and returns the new value. Ids start
// at 1 and are never reused.
func NextID(view LedgerView, name string) (uint64, error) {
	k := keylet.Counter(name)
	c, err := Read[Counter](view, k)
	if err != nil {
		return 0, err
	}
	if c == nil {
		c = &Counter{}
	}
	c.Last++
	if err := Put(view, k, c); err != nil {
		return 0, err
	}
	return c.Last, nil
}

// LastID returns the last id handed out, or 0 if none.
func LastID(view LedgerView, name string) (uint64, error) {
	c, err := Read[Counter](view, keylet.Counter(name))
	if err != nil || c == nil {
		return 0, err
	}
	return c.Last, nil
}
