// Package lock provides per-account mutual exclusion for the transaction engine.
//
// Every Locker acquires its keys in ascending order with duplicates removed, so two
// requests touching the same pair of accounts in opposite directions cannot deadlock.
package lock

import (
	"context"
	"errors"
	"slices"
)

// ErrLockTimeout is returned when a lock could not be acquired before the context ended.
var ErrLockTimeout = errors.New("timed out waiting for account lock")

// Locker acquires exclusive access to a set of account numbers.
type Locker interface {
	// Lock blocks until every key is held or ctx is done. The returned func releases
	// all keys and is safe to call more than once.
	Lock(ctx context.Context, keys ...int64) (unlock func(), err error)
}

// Order returns keys sorted ascending without duplicates.
func Order(keys []int64) []int64 {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
