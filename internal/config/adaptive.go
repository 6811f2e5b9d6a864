package config

import (
	"runtime"

	"github.com/agbru/numrt/numeric"
)

// Worker resolution chain (highest priority first):
//   1. --workers
//   2. NUMRT_WORKERS
//   3. Adaptive hardware estimation (this file)

// ApplyAdaptiveDefaults fills in settings left at their zero default with
// values derived from the host. Explicit settings are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	return cfg
}

// EstimateOptimalWorkers returns the verify concurrency for this host. The
// suite runs one task per symbol, so more workers than symbols never help.
func EstimateOptimalWorkers() int {
	n := runtime.NumCPU()
	if symbols := len(numeric.Kinds) * len(numeric.Ops); n > symbols {
		n = symbols
	}
	if n < 1 {
		n = 1
	}
	return n
}
