package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedLock_SameKeyWaits(t *testing.T) {
	k := newKeyedLock()
	key := planKey(testUser, "rent")

	unlock, err := k.Lock(context.Background(), key)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		u, err := k.Lock(context.Background(), key)
		if err == nil {
			u()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first was held")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock never acquired")
	}
	assert.Equal(t, 0, k.size())
}

func TestKeyedLock_DifferentKeysIndependent(t *testing.T) {
	k := newKeyedLock()

	u1, err := k.Lock(context.Background(), planKey(testUser, "rent"))
	require.NoError(t, err)
	defer u1()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	u2, err := k.Lock(ctx, planKey(testUser, "holiday"))
	require.NoError(t, err)
	u2()

	other := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	u3, err := k.Lock(ctx, planKey(other, "rent"))
	require.NoError(t, err)
	u3()
}

func TestKeyedLock_ContextCanceledWhileWaiting(t *testing.T) {
	k := newKeyedLock()
	key := planKey(testUser, "rent")

	unlock, err := k.Lock(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = k.Lock(ctx, key)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Equal(t, 0, k.size())
}

func TestPlanKey_CaseInsensitiveUser(t *testing.T) {
	lower := common.HexToAddress("0x833589fcd6edb6e08f4c7c32d4f71b54bda02913")
	assert.Equal(t, planKey(usdc, "rent"), planKey(lower, "rent"))
	assert.NotEqual(t, planKey(usdc, "rent"), planKey(usdc, "Rent"))
}
