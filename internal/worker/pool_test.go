package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamescript-extractor/internal/worker"
)

func TestRun_PreservesInputOrder(t *testing.T) {
	pool := worker.New(4, func(_ context.Context, n int) (int, error) {
		return n * n, nil
	})
	inputs := []int{5, 1, 4, 2, 3, 9, 7}
	out := pool.Run(context.Background(), inputs)
	require.Len(t, out, len(inputs))
	for i, o := range out {
		assert.Equal(t, inputs[i], o.Input)
		assert.Equal(t, inputs[i]*inputs[i], o.Value)
		assert.NoError(t, o.Err)
	}
}

func TestRun_ErrorsStayWithTheirInput(t *testing.T) {
	boom := errors.New("boom")
	pool := worker.New(2, func(_ context.Context, s string) (int, error) {
		if s == "bad" {
			return 0, boom
		}
		return len(s), nil
	})
	out := pool.Run(context.Background(), []string{"ok", "bad", "fine"})
	assert.NoError(t, out[0].Err)
	assert.ErrorIs(t, out[1].Err, boom)
	assert.Equal(t, 4, out[2].Value)
}

func TestRun_CancelledContext(t *testing.T) {
	var calls atomic.Int32
	pool := worker.New(1, func(_ context.Context, n int) (int, error) {
		calls.Add(1)
		return n, nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := pool.Run(ctx, []int{1, 2, 3})
	require.Len(t, out, 3)
	for _, o := range out {
		if o.Err != nil {
			assert.ErrorIs(t, o.Err, context.Canceled)
		}
	}
	assert.LessOrEqual(t, int(calls.Load()), 3)
}

func TestNew_MinimumSize(t *testing.T) {
	pool := worker.New(0, func(_ context.Context, n int) (int, error) { return n, nil })
	assert.Equal(t, 1, pool.Size())
	assert.Empty(t, pool.Run(context.Background(), nil))
}

func TestChunk(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, worker.Chunk([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1}, {2}}, worker.Chunk([]int{1, 2}, 0))
	assert.Nil(t, worker.Chunk([]int{}, 3))
}
