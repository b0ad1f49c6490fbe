package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Outcome pairs one input with what processing it produced.
type Outcome[T any, R any] struct {
	Input T
	Value R
	Err   error
}

// Func processes a single input.
type Func[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs a Func over many inputs with bounded concurrency.
type Pool[T any, R any] struct {
	size int
	fn   Func[T, R]
}

// New creates a pool of size workers. Sizes below one are raised to one.
func New[T any, R any](size int, fn Func[T, R]) *Pool[T, R] {
	if size < 1 {
		size = 1
	}
	return &Pool[T, R]{size: size, fn: fn}
}

// Size returns the number of workers.
func (p *Pool[T, R]) Size() int { return p.size }

// Run processes every input and returns one outcome per input, in input order
// regardless of completion order. Inputs not started before ctx is done carry
// ctx.Err().
func (p *Pool[T, R]) Run(ctx context.Context, inputs []T) []Outcome[T, R] {
	outcomes := make([]Outcome[T, R], len(inputs))
	started := make([]bool, len(inputs))
	next := make(chan int)

	var wg sync.WaitGroup
	workers := min(p.size, len(inputs))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for idx := range next {
				v, err := p.fn(ctx, inputs[idx])
				outcomes[idx] = Outcome[T, R]{Input: inputs[idx], Value: v, Err: err}
				if err != nil {
					log.Warn().Err(err).Int("worker", worker).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

feed:
	for i := range inputs {
		select {
		case <-ctx.Done():
			break feed
		case next <- i:
			started[i] = true
		}
	}
	close(next)
	wg.Wait()

	for i, ok := range started {
		if !ok {
			outcomes[i] = Outcome[T, R]{Input: inputs[i], Err: ctx.Err()}
		}
	}
	return outcomes
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	var chunks [][]T
	for i := 0; i < len(items); i += size {
		chunks = append(chunks, items[i:min(i+size, len(items))])
	}
	return chunks
}
