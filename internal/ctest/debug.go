package ctest

import (
	"cta/internal/debugger"
	"cta/internal/domain"
)

// DeriveDebugConfig builds the per-test launch fragment handed to the host
// debugger: display name, program, arguments and working directory.
func DeriveDebugConfig(test domain.TestDescriptor) debugger.Config {
	return debugger.Config{
		Name:    "CTest: " + test.Name,
		Program: test.Command,
		Args:    test.Args,
		Cwd:     test.WorkingDir,
	}
}
