package tree

import "cta/internal/domain"

// UnnamedLabel is the display label used when a test name ends in the
// delimiter and the final segment is empty.
const UnnamedLabel = "unnamed"

// Node is either a *SuiteNode or a *TestNode.
type Node interface {
	NodeID() string
}

// SuiteNode groups tests sharing a name prefix. The root suite is a sentinel
// with id domain.RootID and is always present, even for an empty registry.
type SuiteNode struct {
	ID       string
	Label    string
	Children []Node // Insertion order, first-seen while scanning the registry
}

// NodeID returns the suite's flat id.
func (s *SuiteNode) NodeID() string {
	return s.ID
}

// TestNode wraps exactly one descriptor. Its id is the descriptor's name.
type TestNode struct {
	ID          string
	Label       string
	Description string // Full original test name, shown as a tooltip
	Test        domain.TestDescriptor
}

// NodeID returns the test's flat id.
func (t *TestNode) NodeID() string {
	return t.ID
}
