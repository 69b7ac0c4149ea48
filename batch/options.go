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
	"log/slog"
	"runtime"
)

// Config holds configuration for a batch run
type Config struct {
	// Workers is the number of parallel workers
	Workers int
	// BufferSize is the buffer size of the job and result channels
	BufferSize int
	// Logger defaults to slog.Default()
	Logger *slog.Logger
	// Metrics receives per-job counters when set
	Metrics *Metrics
}

// DefaultConfig returns a Config with one worker per CPU
func DefaultConfig() Config {
	workers := runtime.NumCPU()
	if workers < 2 {
		workers = 2
	}
	return Config{
		Workers:    workers,
		BufferSize: 64,
	}
}

// Option is a functional option for configuring a batch run
type Option func(*Config)

// WithConfig applies a complete Config, replacing all default values.
// Options applied after WithConfig still override the config values
func WithConfig(config Config) Option {
	return func(c *Config) {
		*c = config
	}
}

// WithWorkers sets the number of workers
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithBufferSize sets the buffer size of the job and result channels
func WithBufferSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.BufferSize = size
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(metrics *Metrics) Option {
	return func(c *Config) {
		c.Metrics = metrics
	}
}

func newConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
