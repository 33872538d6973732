package analysis_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessassist/internal/analysis"
	"github.com/vytor/chessassist/internal/testutil"
)

func TestEnginePool_BoundsSessions(t *testing.T) {
	pool := analysis.NewEnginePool(2)
	require.Equal(t, 2, pool.Size())

	ctx := context.Background()
	require.NoError(t, pool.Acquire(ctx))
	require.NoError(t, pool.Acquire(ctx))
	assert.Equal(t, 0, pool.Available())

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Acquire(waitCtx), context.DeadlineExceeded)

	pool.Release()
	assert.Equal(t, 1, pool.Available())
	require.NoError(t, pool.Acquire(ctx))
}

func TestEnginePool_DefaultSize(t *testing.T) {
	assert.Equal(t, 1, analysis.NewEnginePool(0).Size())
}

func TestEnginePool_Closed(t *testing.T) {
	pool := analysis.NewEnginePool(1)
	pool.Close()
	pool.Close()

	assert.ErrorIs(t, pool.Acquire(context.Background()), analysis.ErrPoolClosed)
	pool.Release()
	assert.Equal(t, 0, pool.Available())
}

func TestEnginePool_RunReleasesSlot(t *testing.T) {
	script := testutil.FakeEngine(t, fakeEngineRun, testutil.EngineNormal)
	pool := analysis.NewEnginePool(1)

	var score float64
	err := pool.Run(context.Background(), script, analysis.Options{Depth: 5}, func(e *analysis.Engine) error {
		assert.Equal(t, 0, pool.Available())
		res, err := e.Evaluate(context.Background(), startFEN)
		score = res.Score
		return err
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.35, score, 1e-9)
	assert.Equal(t, 1, pool.Available())
}

func TestEnginePool_CloseWhileSessionsChurn(t *testing.T) {
	pool := analysis.NewEnginePool(2)
	ctx := context.Background()
	require.NoError(t, pool.Acquire(ctx))

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if err := pool.Acquire(ctx); err != nil {
					return
				}
				pool.Release()
			}
		}()
	}

	closed := make(chan struct{})
	go func() {
		pool.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return while other goroutines held slots")
	}
	close(stop)
	wg.Wait()

	pool.Release()
	assert.ErrorIs(t, pool.Acquire(ctx), analysis.ErrPoolClosed)
}
