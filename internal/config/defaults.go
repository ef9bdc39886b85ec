package config

const (
	// DefaultCTestPath is the harness binary resolved from PATH.
	DefaultCTestPath = "ctest"
	// DefaultBuildDir is the unset build directory. Discovery then runs in
	// the workspace root and a missing test cache is swallowed silently.
	DefaultBuildDir = ""
	// DefaultBuildConfig passes no --build-config to the harness.
	DefaultBuildConfig = ""
	// DefaultDelimiter builds a flat tree; no suites are derived.
	DefaultDelimiter = ""
	// DefaultParallelJobs autodetects the concurrency bound.
	DefaultParallelJobs = 0
	// DefaultDebugConfig uses the built-in launch template.
	DefaultDebugConfig = ""
)

// Settings keys of the external tool, consulted for the concurrency bound
// when no explicit value is configured, in priority order.
const (
	// KeyCTestParallelJobs is the tool's test-specific parallelism setting.
	KeyCTestParallelJobs = "ctest.parallelJobs"
	// KeyCMakeParallelJobs is the tool's general parallelism setting.
	KeyCMakeParallelJobs = "cmake.parallelJobs"
)
