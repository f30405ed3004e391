package automation

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, FrontDocument, Key(""))
	assert.Equal(t, "Deck", Key("Deck"))
}

func TestLanes_SameKeySerializes(t *testing.T) {
	lanes := NewLanes()

	var active, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := lanes.Acquire(context.Background(), "Deck")
			require.NoError(t, err)
			defer release()

			n := atomic.AddInt32(&active, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), peak)
	assert.Equal(t, 0, lanes.Len())
}

func TestLanes_DifferentKeysDoNotBlock(t *testing.T) {
	lanes := NewLanes()

	releaseA, err := lanes.Acquire(context.Background(), "A")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := lanes.Acquire(ctx, "B")
	require.NoError(t, err)
	releaseB()
}

func TestLanes_AcquireHonorsContext(t *testing.T) {
	lanes := NewLanes()

	release, err := lanes.Acquire(context.Background(), FrontDocument)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = lanes.Acquire(ctx, FrontDocument)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()
	release() // second call is a no-op
	assert.Equal(t, 0, lanes.Len())
}

func TestLanes_NilNeverBlocks(t *testing.T) {
	var lanes *Lanes
	release, err := lanes.Acquire(context.Background(), "x")
	require.NoError(t, err)
	release()
	assert.Equal(t, 0, lanes.Len())
}
