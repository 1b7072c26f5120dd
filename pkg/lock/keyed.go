package lock

import (
	"context"
	"fmt"
	"sync"
)

// entry is a one-slot semaphore shared by every waiter on the same key.
type entry struct {
	sem  chan struct{}
	refs int
}

// Keyed is an in-process Locker. Entries are reference counted and dropped once no
// goroutine holds or waits for them.
type Keyed struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

// NewKeyed creates an empty Keyed locker.
func NewKeyed() *Keyed {
	return &Keyed{entries: make(map[int64]*entry)}
}

var _ Locker = (*Keyed)(nil)

// Lock implements Locker.
func (k *Keyed) Lock(ctx context.Context, keys ...int64) (func(), error) {
	ordered := Order(keys)
	held := make([]int64, 0, len(ordered))
	for _, key := range ordered {
		if err := k.acquire(ctx, key); err != nil {
			k.releaseAll(held)
			return nil, err
		}
		held = append(held, key)
	}
	var once sync.Once
	return func() { once.Do(func() { k.releaseAll(held) }) }, nil
}

func (k *Keyed) acquire(ctx context.Context, key int64) error {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.unref(key, e)
		return fmt.Errorf("%w %d: %w", ErrLockTimeout, key, ctx.Err())
	}
}

func (k *Keyed) releaseAll(keys []int64) {
	for i := len(keys) - 1; i >= 0; i-- {
		k.mu.Lock()
		e := k.entries[keys[i]]
		k.mu.Unlock()
		<-e.sem
		k.unref(keys[i], e)
	}
}

func (k *Keyed) unref(key int64, e *entry) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
}

// Len returns the number of keys currently held or awaited.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
