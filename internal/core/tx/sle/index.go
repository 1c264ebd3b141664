package sle

import (
	"slices"

	"github.com/LeJamon/goMarketd/internal/core/ledger/keylet"
)

// IDSet is a sorted set of record ids stored under an index keylet.
type IDSet struct {
	IDs []uint64 `codec:"IDs"`
}

// IndexAdd inserts id into the index at k.
func IndexAdd(view LedgerView, k keylet.Keylet, id uint64) error {
	set, err := Read[IDSet](view, k)
	if err != nil {
		return err
	}
	if set == nil {
		set = &IDSet{}
	}
	i, found := slices.BinarySearch(set.IDs, id)
	if found {
		return nil
	}
	set.IDs = slices.Insert(set.IDs, i, id)
	return Put(view, k, set)
}

// IndexRemove drops id from the index at k. The entry is erased once empty.
func IndexRemove(view LedgerView, k keylet.Keylet, id uint64) error {
	set, err := Read[IDSet](view, k)
	if err != nil || set == nil {
		return err
	}
	i, found := slices.BinarySearch(set.IDs, id)
	if !found {
		return nil
	}
	set.IDs = slices.Delete(set.IDs, i, i+1)
	if len(set.IDs) == 0 {
		return view.Erase(k)
	}
	return Put(view, k, set)
}

// IndexList returns the ids stored at k in ascending order.
func IndexList(view LedgerView, k keylet.Keylet) ([]uint64, error) {
	set, err := Read[IDSet](view, k)
	if err != nil || set == nil {
		return nil, err
	}
	return set.IDs, nil
}
