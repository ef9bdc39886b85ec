// Package ctest implements the concrete collaborators around the CTest
// harness: test discovery via --show-only=json-v1, direct execution of a
// test's native command, and debug launch configuration derivation.
package ctest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cta/internal/domain"
	"cta/internal/execution"

	"github.com/rs/zerolog"
)

// testFileName is the cache file CTest generates per configured build tree.
const testFileName = "CTestTestfile.cmake"

// Loader discovers tests by invoking ctest --show-only=json-v1.
type Loader struct {
	log zerolog.Logger
}

// NewLoader creates a Loader.
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log.With().Str("component", "loader").Logger()}
}

// Load runs the harness in the build directory and parses its JSON test
// listing into descriptors, preserving the reported order.
func (l *Loader) Load(ctx context.Context, toolPath, buildDir, buildConfig string, extraArgs []string) ([]domain.TestDescriptor, error) {
	args := []string{"--show-only=json-v1"}
	if buildConfig != "" {
		args = append(args, "--build-config", buildConfig)
	}
	args = append(args, extraArgs...)

	l.log.Debug().Str("tool", toolPath).Str("buildDir", buildDir).Msg("discovering tests")

	cmd := exec.CommandContext(ctx, toolPath, args...)
	cmd.Dir = buildDir
	out, err := cmd.Output()
	if err != nil {
		if isCacheNotFound(buildDir, err) {
			return nil, execution.ErrCacheNotFound
		}
		return nil, fmt.Errorf("ctest discovery failed: %w: %s", err, exitStderr(err))
	}

	tests, err := ParseShowOnly(out, buildDir)
	if err != nil {
		return nil, fmt.Errorf("parse ctest listing: %w", err)
	}
	l.log.Debug().Int("count", len(tests)).Msg("tests discovered")
	return tests, nil
}

// isCacheNotFound recognizes the distinguishable no-build-output condition:
// the build tree has no test cache file, or the harness itself complained
// about the missing test configuration.
func isCacheNotFound(buildDir string, err error) bool {
	if _, statErr := os.Stat(filepath.Join(buildDir, testFileName)); os.IsNotExist(statErr) {
		return true
	}
	return strings.Contains(exitStderr(err), "No test configuration file found")
}

func exitStderr(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}

// showOnlyReport mirrors the json-v1 document emitted by ctest.
type showOnlyReport struct {
	Tests []struct {
		Name       string   `json:"name"`
		Command    []string `json:"command"`
		Properties []struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		} `json:"properties"`
	} `json:"tests"`
}

// ParseShowOnly converts a json-v1 listing into descriptors. Tests with no
// command (NOT_AVAILABLE configurations) keep an empty command and fall back
// to the harness at run time. The working directory property overrides the
// build directory default.
func ParseShowOnly(data []byte, buildDir string) ([]domain.TestDescriptor, error) {
	var report showOnlyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	tests := make([]domain.TestDescriptor, 0, len(report.Tests))
	for _, entry := range report.Tests {
		desc := domain.TestDescriptor{
			Name:       entry.Name,
			WorkingDir: buildDir,
		}
		if len(entry.Command) > 0 {
			desc.Command = entry.Command[0]
			desc.Args = entry.Command[1:]
		}
		for _, prop := range entry.Properties {
			if prop.Name != "WORKING_DIRECTORY" {
				continue
			}
			var dir string
			if err := json.Unmarshal(prop.Value, &dir); err == nil && dir != "" {
				desc.WorkingDir = dir
			}
		}
		tests = append(tests, desc)
	}
	return tests, nil
}
