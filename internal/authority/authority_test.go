package authority

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/aispawner/internal/testutil"
)

type recordingListener struct {
	gained atomic.Int32
	lost   atomic.Int32
}

func (l *recordingListener) OnAuthorityGained() { l.gained.Add(1) }
func (l *recordingListener) OnAuthorityLost()   { l.lost.Add(1) }

// holds reports whether the last transition seen was a gain.
func (l *recordingListener) holds() bool {
	return l.gained.Load() > l.lost.Load()
}

func TestNotifier_DeduplicatesTransitions(t *testing.T) {
	l := &recordingListener{}
	n := &notifier{listeners: []Listener{l}}

	n.gain()
	n.gain()
	assert.True(t, n.authoritative.Load())
	n.lose()
	n.lose()
	assert.False(t, n.authoritative.Load())

	assert.Equal(t, int32(1), l.gained.Load())
	assert.Equal(t, int32(1), l.lost.Load())
}

func TestStatic(t *testing.T) {
	l1, l2 := &recordingListener{}, &recordingListener{}
	s := NewStatic(l1, l2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, l1.holds, time.Second, time.Millisecond)
	assert.Equal(t, int32(1), l1.gained.Load())
	assert.Equal(t, int32(1), l2.gained.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, l1.holds())
	assert.Equal(t, int32(1), l1.lost.Load())
	assert.Equal(t, int32(1), l2.lost.Load())
}

func TestAdvisoryLock_SingleHolder(t *testing.T) {
	pool, _ := testutil.SetupTestDB(t)
	const key = 4242

	l1, l2 := &recordingListener{}, &recordingListener{}
	first := NewAdvisoryLock(pool, key, 10*time.Millisecond, l1)
	second := NewAdvisoryLock(pool, key, 10*time.Millisecond, l2)

	ctx1, cancel1 := context.WithCancel(context.Background())
	done1 := make(chan error, 1)
	go func() { done1 <- first.Start(ctx1) }()
	require.Eventually(t, l1.holds, 5*time.Second, 10*time.Millisecond)

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	done2 := make(chan error, 1)
	go func() { done2 <- second.Start(ctx2) }()

	// second process keeps retrying while first holds the lock
	time.Sleep(100 * time.Millisecond)
	assert.False(t, l2.holds())
	assert.Equal(t, int32(0), l2.gained.Load())

	cancel1()
	<-done1
	assert.Equal(t, int32(1), l1.lost.Load())

	require.Eventually(t, l2.holds, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), l2.gained.Load())

	cancel2()
	<-done2
	assert.False(t, l2.holds())
}
