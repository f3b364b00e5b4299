package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/commandbar/pkg/adapters/memory"
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 10000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Save(ctx, sid, domain.NewTree())
		_ = mgr.Delete(ctx, sid)
	}

	// Every lock entry must be collected once its last holder released it.
	assert.Empty(t, mgr.locks)
}

type countingLocker struct {
	locks   atomic.Int32
	unlocks atomic.Int32
	ttl     time.Duration
	fail    error
}

func (l *countingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fail != nil {
		return nil, l.fail
	}
	l.locks.Add(1)
	l.ttl = ttl
	return func(ctx context.Context) error {
		l.unlocks.Add(1)
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	mgr := NewManager(memory.NewStore(), WithLocker(locker), WithLockTTL(5*time.Second))
	ctx := context.Background()

	require.NoError(t, mgr.Save(ctx, "s", domain.NewTree()))
	_, err := mgr.Load(ctx, "s")
	require.NoError(t, err)

	assert.Equal(t, int32(2), locker.locks.Load())
	assert.Equal(t, int32(2), locker.unlocks.Load())
	assert.Equal(t, 5*time.Second, locker.ttl)

	locker.fail = errors.New("redis down")
	_, err = mgr.Load(ctx, "s")
	assert.ErrorIs(t, err, locker.fail)
}
