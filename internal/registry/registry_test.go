package registry

import (
	"testing"

	"cta/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := New([]domain.TestDescriptor{
		{Name: "a/t1", Command: "/bin/t1"},
		{Name: "a/t2", Command: "/bin/t2"},
	})

	desc, ok := reg.Lookup("a/t2")
	require.True(t, ok)
	assert.Equal(t, "/bin/t2", desc.Command)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_WithPrefix(t *testing.T) {
	reg := New([]domain.TestDescriptor{
		{Name: "a/b/t1"},
		{Name: "a/c/t2"},
		{Name: "b/t3"},
		{Name: "a/b/t4"},
	})

	matched := reg.WithPrefix("a/b/")
	require.Len(t, matched, 2)
	assert.Equal(t, "a/b/t1", matched[0].Name)
	assert.Equal(t, "a/b/t4", matched[1].Name)
}

func TestRegistry_Empty(t *testing.T) {
	reg := Empty()
	assert.Zero(t, reg.Len())
	assert.Empty(t, reg.All())
	assert.Empty(t, reg.WithPrefix("a/"))
}
