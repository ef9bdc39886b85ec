package domain

// RunResult is the outcome of one test subprocess.
type RunResult struct {
	Code   int    // Exit code of the native run; zero means the test passed
	Output string // Combined stdout/stderr captured from the run
}

// Passed reports whether the exit code indicates success.
func (r RunResult) Passed() bool {
	return r.Code == 0
}
