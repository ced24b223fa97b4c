// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// JobQueueSize bounds the in-memory scoring job queue.
	JobQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of pair-scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// MaxTopN caps the n query parameter on ranking endpoints.
	MaxTopN int `koanf:"max_top_n"`

	// RedFlagThreshold drops candidates whose red-flag score exceeds it.
	RedFlagThreshold float64 `koanf:"red_flag_threshold"`

	// MinGemScore filters hidden-gem results below this score.
	MinGemScore float64 `koanf:"min_gem_score"`

	// WeightPreset selects the compatibility weighting scheme:
	// default, mentorship, or roi.
	WeightPreset string `koanf:"weight_preset"`

	// WeightOverrides overrides individual factor weights by name.
	WeightOverrides map[string]float64 `koanf:"weight_overrides"`

	// PredictorEnabled switches pair scoring from the rule-based engine
	// aggregate to the weighted-sum predictor with red-flag refinement.
	PredictorEnabled bool `koanf:"predictor_enabled"`

	// PredictLatencyMinMS and PredictLatencyMaxMS simulate external model
	// latency bounds. Zero disables the simulation.
	PredictLatencyMinMS int `koanf:"predict_latency_min_ms"`
	PredictLatencyMaxMS int `koanf:"predict_latency_max_ms"`

	// SpamKeywords extends the red-flag spam lexicon.
	SpamKeywords []string `koanf:"spam_keywords"`

	// HighValueSkills extends the hidden-gem domain skill lexicon.
	HighValueSkills []string `koanf:"high_value_skills"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		JobQueueSize:     100_000,
		WorkerCount:      runtime.NumCPU() * 4,
		MaxTopN:          100,
		RedFlagThreshold: 50,
		MinGemScore:      50,
		WeightPreset:     "default",
	}
	return c
}
