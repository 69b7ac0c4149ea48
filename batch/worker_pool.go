// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNilProcessFunc is returned when a worker pool is created without a process function
var ErrNilProcessFunc = errors.New("process function must not be nil")

// ProcessFunc handles a single job
type ProcessFunc func(ctx context.Context, job Job) Result

// WorkerPool runs multiple workers in parallel over a job channel
type WorkerPool struct {
	process    ProcessFunc
	numWorkers int
	input      <-chan Job
	output     chan<- Result
	wg         sync.WaitGroup
	started    atomic.Bool
}

// WorkerPoolConfig holds configuration for creating a WorkerPool
type WorkerPoolConfig struct {
	// Process handles each job (required)
	Process ProcessFunc
	// NumWorkers is the number of parallel workers; defaults to 1 if <= 0
	NumWorkers int
	// Input is the channel to receive jobs from
	Input <-chan Job
	// Output is the channel to send results to
	Output chan<- Result
}

// NewWorkerPool creates a new worker pool.
//
// If input or output channels are nil, workers will block until the context is done
func NewWorkerPool(config WorkerPoolConfig) (*WorkerPool, error) {
	if config.Process == nil {
		return nil, ErrNilProcessFunc
	}
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &WorkerPool{
		process:    config.Process,
		numWorkers: numWorkers,
		input:      config.Input,
		output:     config.Output,
	}, nil
}

// Start starts the worker pool. Call Wait to wait for completion.
// This method is idempotent - calling it multiple times has no effect
func (p *WorkerPool) Start(ctx context.Context) {
	if p.started.Swap(true) {
		return
	}
	for range p.numWorkers {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Wait waits for all workers to complete. Workers exit once the input channel is closed
// and drained, or the context is done
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

func (p *WorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.input:
			if !ok {
				return
			}
			result := p.process(ctx, job)
			select {
			case p.output <- result:
			case <-ctx.Done():
				return
			}
		}
	}
}
