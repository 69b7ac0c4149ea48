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
	"sync/atomic"
	"time"
)

// Metrics tracks counters across batch runs.
// Uses atomic counters for thread-safe operation.
type Metrics struct {
	jobsSubmitted atomic.Uint64
	jobsSucceeded atomic.Uint64
	jobsFailed    atomic.Uint64
	totalNanos    atomic.Int64
}

// NewMetrics creates a new Metrics
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordSubmit increments the submitted counter
func (m *Metrics) RecordSubmit() {
	m.jobsSubmitted.Add(1)
}

// RecordResult records the outcome of one job
func (m *Metrics) RecordResult(duration time.Duration, err error) {
	if err != nil {
		m.jobsFailed.Add(1)
	} else {
		m.jobsSucceeded.Add(1)
	}
	m.totalNanos.Add(duration.Nanoseconds())
}

// Stats returns a snapshot of the current metrics
func (m *Metrics) Stats() Stats {
	return Stats{
		JobsSubmitted: m.jobsSubmitted.Load(),
		JobsSucceeded: m.jobsSucceeded.Load(),
		JobsFailed:    m.jobsFailed.Load(),
		TotalDuration: time.Duration(m.totalNanos.Load()),
	}
}

// Stats is a point-in-time snapshot of Metrics
type Stats struct {
	JobsSubmitted uint64
	JobsSucceeded uint64
	JobsFailed    uint64
	// TotalDuration is the summed processing time of all jobs
	TotalDuration time.Duration
}
