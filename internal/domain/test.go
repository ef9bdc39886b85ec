package domain

// TestDescriptor describes a single test reported by the native harness.
// Name is globally unique within one load cycle and doubles as the test's id.
// Descriptors are replaced wholesale on every load, never updated in place.
type TestDescriptor struct {
	Name       string   // Unique test name as reported by the harness
	Command    string   // Executable that runs this test
	Args       []string // Arguments passed to the executable
	WorkingDir string   // Directory the test runs in
}
