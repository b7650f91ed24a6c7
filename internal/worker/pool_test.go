package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_ResultsKeepInputOrder(t *testing.T) {
	inputs := []int{5, 1, 4, 2, 3}
	pool := NewPool(3, func(ctx context.Context, n int) (int, error) {
		// Later inputs finish first.
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * n, nil
	})

	tasks, err := pool.Execute(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, tasks, len(inputs))
	for i, task := range tasks {
		assert.Equal(t, inputs[i], task.Input)
		assert.Equal(t, inputs[i]*inputs[i], task.Result)
		assert.NoError(t, task.Err)
	}
}

func TestPool_TaskErrorsDoNotStopOthers(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool(2, func(ctx context.Context, s string) (int, error) {
		if s == "bad" {
			return 0, boom
		}
		return len(s), nil
	})

	tasks, err := pool.Execute(context.Background(), []string{"a", "bad", "ccc"})
	require.NoError(t, err)
	assert.Equal(t, 1, tasks[0].Result)
	assert.ErrorIs(t, tasks[1].Err, boom)
	assert.Equal(t, 3, tasks[2].Result)
}

func TestPool_BoundedConcurrency(t *testing.T) {
	var running, peak int32
	pool := NewPool(2, func(ctx context.Context, _ int) (struct{}, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return struct{}{}, nil
	})

	_, err := pool.Execute(context.Background(), make([]int, 8))
	require.NoError(t, err)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(1, func(ctx context.Context, n int) (int, error) { return n, nil })
	_, err := pool.Execute(ctx, []int{1, 2, 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPool_Empty(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, n int) (int, error) { return n, nil })
	tasks, err := pool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
