package tick

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTicker struct {
	ticks   atomic.Int32
	elapsed atomic.Int64
}

func (c *countingTicker) Tick(dt time.Duration) {
	c.ticks.Add(1)
	c.elapsed.Add(int64(dt))
}

func TestTickManager_RegisterUnregister(t *testing.T) {
	mgr := NewTickManager(time.Second)
	ticker := &countingTicker{}

	mgr.Register("spawner", ticker)
	mgr.Register("spawner", ticker) // replace, not add
	assert.Equal(t, 1, mgr.Count())
	assert.True(t, mgr.IsRegistered("spawner"))

	mgr.Unregister("spawner")
	mgr.Unregister("spawner")
	assert.Equal(t, 0, mgr.Count())
	assert.False(t, mgr.IsRegistered("spawner"))
}

func TestTickManager_TickAllPassesDelta(t *testing.T) {
	mgr := NewTickManager(time.Second)
	a, b := &countingTicker{}, &countingTicker{}
	mgr.Register("a", a)
	mgr.Register("b", b)

	mgr.tickAll(250 * time.Millisecond)
	mgr.tickAll(750 * time.Millisecond)

	assert.Equal(t, int32(2), a.ticks.Load())
	assert.Equal(t, int64(time.Second), a.elapsed.Load())
	assert.Equal(t, int32(2), b.ticks.Load())
}

func TestTickManager_Start(t *testing.T) {
	mgr := NewTickManager(10 * time.Millisecond)
	ticker := &countingTicker{}
	mgr.Register("spawner", ticker)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := mgr.Start(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.GreaterOrEqual(t, ticker.ticks.Load(), int32(3))
	assert.Positive(t, ticker.elapsed.Load())
}

func TestTickManager_InvalidInterval(t *testing.T) {
	err := NewTickManager(0).Start(context.Background())
	assert.Error(t, err)
}

func TestTickerFunc(t *testing.T) {
	var got time.Duration
	TickerFunc(func(dt time.Duration) { got = dt }).Tick(time.Second)
	assert.Equal(t, time.Second, got)
}
