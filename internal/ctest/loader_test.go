package ctest

import (
	"testing"

	"cta/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showOnlySample = `{
  "kind": "ctestInfo",
  "version": {"major": 1, "minor": 0},
  "tests": [
    {
      "name": "suite/alpha",
      "command": ["/ws/build/bin/alpha", "--gtest_filter=*"],
      "properties": [
        {"name": "WORKING_DIRECTORY", "value": "/ws/build/tests"},
        {"name": "TIMEOUT", "value": 30}
      ]
    },
    {
      "name": "suite/beta",
      "command": ["/ws/build/bin/beta"],
      "properties": []
    },
    {
      "name": "orphan",
      "properties": []
    }
  ]
}`

func TestParseShowOnly(t *testing.T) {
	tests, err := ParseShowOnly([]byte(showOnlySample), "/ws/build")
	require.NoError(t, err)
	require.Len(t, tests, 3)

	assert.Equal(t, domain.TestDescriptor{
		Name:       "suite/alpha",
		Command:    "/ws/build/bin/alpha",
		Args:       []string{"--gtest_filter=*"},
		WorkingDir: "/ws/build/tests",
	}, tests[0])

	assert.Equal(t, "/ws/build/bin/beta", tests[1].Command)
	assert.Empty(t, tests[1].Args)
	assert.Equal(t, "/ws/build", tests[1].WorkingDir,
		"build dir is the default working directory")

	// NOT_AVAILABLE listings have no command and fall back to the harness.
	assert.Empty(t, tests[2].Command)
}

func TestParseShowOnly_Order(t *testing.T) {
	tests, err := ParseShowOnly([]byte(showOnlySample), "/ws/build")
	require.NoError(t, err)

	names := make([]string, 0, len(tests))
	for _, test := range tests {
		names = append(names, test.Name)
	}
	assert.Equal(t, []string{"suite/alpha", "suite/beta", "orphan"}, names)
}

func TestParseShowOnly_Invalid(t *testing.T) {
	_, err := ParseShowOnly([]byte("Test project /ws/build"), "/ws/build")
	assert.Error(t, err)
}

func TestParseShowOnly_Empty(t *testing.T) {
	tests, err := ParseShowOnly([]byte(`{"kind":"ctestInfo","tests":[]}`), "/ws/build")
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestDeriveDebugConfig(t *testing.T) {
	cfg := DeriveDebugConfig(domain.TestDescriptor{
		Name:       "suite/alpha",
		Command:    "/ws/build/bin/alpha",
		Args:       []string{"--gtest_filter=*"},
		WorkingDir: "/ws/build/tests",
	})

	assert.Equal(t, "CTest: suite/alpha", cfg.Name)
	assert.Equal(t, "/ws/build/bin/alpha", cfg.Program)
	assert.Equal(t, []string{"--gtest_filter=*"}, cfg.Args)
	assert.Equal(t, "/ws/build/tests", cfg.Cwd)
}
