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

// Package batch processes independent transactions in parallel on a pool of workers.
// Each job owns its transaction, so no state is shared between workers.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/blinklabs-io/gostacks/builder"
	"github.com/blinklabs-io/gostacks/keys"
	"github.com/blinklabs-io/gostacks/transaction"
)

// Job is a single transaction to process
type Job struct {
	// Index is the position of the job in the batch. It is assigned by Run
	Index int
	Tx    *transaction.Transaction
	// Origin and Keys describe the origin signers. With no keys the transaction is only
	// verified and serialized
	Origin builder.Origin
	Keys   []keys.PrivateKey
}

// Result is the outcome of a Job
type Result struct {
	Index    int
	Tx       *transaction.Transaction
	TxID     transaction.Hash
	Raw      []byte
	Err      error
	Duration time.Duration
}

// Run passes every job through process on a worker pool and returns the results in job
// order. Per-job failures are reported in Result.Err. An error is returned only when the
// context is done, in which case some results may be missing
func Run(
	ctx context.Context,
	jobs []Job,
	process ProcessFunc,
	opts ...Option,
) ([]Result, error) {
	cfg := newConfig(opts...)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan Job, cfg.BufferSize)
	output := make(chan Result, cfg.BufferSize)
	pool, err := NewWorkerPool(WorkerPoolConfig{
		Process: func(ctx context.Context, job Job) Result {
			start := time.Now()
			result := process(ctx, job)
			result.Index = job.Index
			result.Duration = time.Since(start)
			return result
		},
		NumWorkers: cfg.Workers,
		Input:      input,
		Output:     output,
	})
	if err != nil {
		return nil, err
	}
	pool.Start(ctx)

	go func() {
		defer close(input)
		for idx, job := range jobs {
			job.Index = idx
			if cfg.Metrics != nil {
				cfg.Metrics.RecordSubmit()
			}
			select {
			case input <- job:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		pool.Wait()
		close(output)
	}()

	results := make([]Result, len(jobs))
	received := 0
	for result := range output {
		results[result.Index] = result
		received++
		if cfg.Metrics != nil {
			cfg.Metrics.RecordResult(result.Duration, result.Err)
		}
		if result.Err != nil {
			cfg.Logger.Warn(
				"batch job failed",
				"index", result.Index,
				"error", result.Err,
			)
			continue
		}
		cfg.Logger.Debug(
			"batch job complete",
			"index", result.Index,
			"txid", result.TxID.String(),
			"duration", result.Duration,
		)
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	if received < len(jobs) {
		return results, fmt.Errorf("batch ended with %d of %d results", received, len(jobs))
	}
	return results, nil
}

// Sign signs, verifies and serializes each job's transaction in parallel. The transactions
// in the jobs are not modified
func Sign(ctx context.Context, jobs []Job, opts ...Option) ([]Result, error) {
	cfg := newConfig(opts...)
	return Run(
		ctx,
		jobs,
		func(ctx context.Context, job Job) Result {
			return signJob(job, cfg)
		},
		WithConfig(cfg),
	)
}

func signJob(job Job, cfg Config) Result {
	if job.Tx == nil {
		return Result{Err: fmt.Errorf("job %d has no transaction", job.Index)}
	}
	tx := job.Tx.Clone()
	if len(job.Keys) > 0 {
		signed, err := builder.Sign(tx, job.Origin, job.Keys, builder.WithLogger(cfg.Logger))
		if err != nil {
			return Result{Err: err}
		}
		tx = signed
	}
	if err := tx.Verify(); err != nil {
		return Result{Tx: tx, Err: err}
	}
	raw, err := tx.Serialize()
	if err != nil {
		return Result{Tx: tx, Err: err}
	}
	return Result{
		Tx:   tx,
		TxID: transaction.HashData(raw),
		Raw:  raw,
	}
}
