package tree

import (
	"testing"

	"cta/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptors(names ...string) []domain.TestDescriptor {
	tests := make([]domain.TestDescriptor, 0, len(names))
	for _, name := range names {
		tests = append(tests, domain.TestDescriptor{Name: name, Command: "/bin/" + name})
	}
	return tests
}

func TestBuild_EmptyDelimiter(t *testing.T) {
	root := Build(descriptors("a/b/t1", "t2", "t3"), "")

	require.Len(t, root.Children, 3)
	assert.Equal(t, domain.RootID, root.ID)
	for i, name := range []string{"a/b/t1", "t2", "t3"} {
		leaf, ok := root.Children[i].(*TestNode)
		require.True(t, ok, "child %d should be a test node", i)
		assert.Equal(t, name, leaf.ID)
		assert.Equal(t, name, leaf.Label)
	}
}

func TestBuild_EmptyRegistry(t *testing.T) {
	root := Build(nil, "/")

	assert.Equal(t, domain.RootID, root.ID)
	assert.Empty(t, root.Children)
}

func TestBuild_Hierarchy(t *testing.T) {
	root := Build(descriptors("a/b/t1", "a/b/t2", "a/c/t3"), "/")

	require.Len(t, root.Children, 1)
	suiteA, ok := root.Children[0].(*SuiteNode)
	require.True(t, ok)
	assert.Equal(t, "a/*", suiteA.ID)
	assert.Equal(t, "a", suiteA.Label)

	// Two child suites, no duplicate created for the second a/b test.
	require.Len(t, suiteA.Children, 2)
	suiteB, ok := suiteA.Children[0].(*SuiteNode)
	require.True(t, ok)
	assert.Equal(t, "a/b/*", suiteB.ID)
	suiteC, ok := suiteA.Children[1].(*SuiteNode)
	require.True(t, ok)
	assert.Equal(t, "a/c/*", suiteC.ID)

	require.Len(t, suiteB.Children, 2)
	t1 := suiteB.Children[0].(*TestNode)
	t2 := suiteB.Children[1].(*TestNode)
	assert.Equal(t, "a/b/t1", t1.ID)
	assert.Equal(t, "t1", t1.Label)
	assert.Equal(t, "a/b/t1", t1.Description)
	assert.Equal(t, "t2", t2.Label)

	require.Len(t, suiteC.Children, 1)
	assert.Equal(t, "t3", suiteC.Children[0].(*TestNode).Label)
}

func TestBuild_LeafWithoutDelimiterOccurrence(t *testing.T) {
	root := Build(descriptors("a/t1", "standalone"), "/")

	require.Len(t, root.Children, 2)
	_, ok := root.Children[0].(*SuiteNode)
	assert.True(t, ok)
	leaf, ok := root.Children[1].(*TestNode)
	require.True(t, ok)
	assert.Equal(t, "standalone", leaf.ID)
	assert.Equal(t, "standalone", leaf.Label)
}

func TestBuild_NameEndingInDelimiter(t *testing.T) {
	root := Build(descriptors("a/"), "/")

	require.Len(t, root.Children, 1)
	suite := root.Children[0].(*SuiteNode)
	require.Len(t, suite.Children, 1)
	leaf := suite.Children[0].(*TestNode)
	assert.Equal(t, UnnamedLabel, leaf.Label)
	assert.Equal(t, "a/", leaf.ID)
}

func TestBuild_Deterministic(t *testing.T) {
	tests := descriptors("x/y/t1", "x/t2", "x/y/t3", "z/t4")

	first := Build(tests, "/")
	second := Build(tests, "/")

	var walk func(n Node) []string
	walk = func(n Node) []string {
		switch node := n.(type) {
		case *SuiteNode:
			ids := []string{node.ID + ":" + node.Label}
			for _, child := range node.Children {
				ids = append(ids, walk(child)...)
			}
			return ids
		case *TestNode:
			return []string{node.ID + ":" + node.Label}
		}
		return nil
	}

	assert.Equal(t, walk(first), walk(second))
}
