package config

import "runtime"

// Settings is the host's workspace-scoped configuration lookup.
type Settings interface {
	// Int returns the value for key, or false when the key is absent or not
	// numeric.
	Int(key string) (int, bool)
}

// ResolveParallelJobs resolves the concurrency bound for one suite run.
// Priority order, first non-zero wins: explicit setting, the external tool's
// test-specific parallelism, its general parallelism, then the logical
// processor count. Values below 1 clamp to 1, serializing execution.
//
// Resolution happens per suite run, not per whole run, so live setting
// changes are picked up between suites.
func ResolveParallelJobs(cfg *Config, settings Settings) int {
	if cfg.ParallelJobs != 0 {
		return clampJobs(cfg.ParallelJobs)
	}
	if settings != nil {
		for _, key := range []string{KeyCTestParallelJobs, KeyCMakeParallelJobs} {
			if n, ok := settings.Int(key); ok && n != 0 {
				return clampJobs(n)
			}
		}
	}
	return clampJobs(runtime.NumCPU())
}

func clampJobs(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
