package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []int64{1, 5, 9}, Order([]int64{9, 1, 5, 9, 1}))
	in := []int64{3, 2}
	_ = Order(in)
	assert.Equal(t, []int64{3, 2}, in, "input is not modified")
}

func TestKeyed_ExclusiveAccess(t *testing.T) {
	t.Parallel()
	k := NewKeyed()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(context.Background(), 1101)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, k.Len(), "entries are dropped once released")
}

func TestKeyed_OppositeOrderNoDeadlock(t *testing.T) {
	t.Parallel()
	k := NewKeyed()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(ctx, 1, 2)
			if assert.NoError(t, err) {
				unlock()
			}
		}()
		go func() {
			defer wg.Done()
			unlock, err := k.Lock(ctx, 2, 1)
			if assert.NoError(t, err) {
				unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, k.Len())
}

func TestKeyed_DuplicateKeys(t *testing.T) {
	t.Parallel()
	k := NewKeyed()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock, err := k.Lock(ctx, 7, 7)
	require.NoError(t, err, "a self-transfer locks its account once")
	unlock()
	unlock()
	assert.Equal(t, 0, k.Len())
}

func TestKeyed_ContextCancelled(t *testing.T) {
	t.Parallel()
	k := NewKeyed()
	unlock, err := k.Lock(context.Background(), 1, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, 0, 2)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.Equal(t, 0, k.Len(), "keys held before the failure are released")
}
