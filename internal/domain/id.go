package domain

import "strings"

// Reserved markers of the flat id scheme shared with the host UI. A suite's
// id is its accumulated name prefix plus the delimiter plus SuiteMarker, so a
// suite can never collide with a leaf test whose name equals the prefix.
const (
	// RootID is the sentinel id of the always-present root suite.
	RootID = "*"
	// SuiteMarker is the suffix distinguishing suite ids from test names.
	SuiteMarker = "*"
)

// NodeKind tags a parsed node identifier.
type NodeKind int

const (
	// KindRoot identifies the root suite sentinel.
	KindRoot NodeKind = iota
	// KindSuite identifies a derived suite by its name prefix.
	KindSuite
	// KindLeaf identifies a single executable test by name.
	KindLeaf
)

// NodeID is the structured form of a flat test-explorer id.
type NodeID struct {
	Kind   NodeKind
	Prefix string // Suite name prefix, including the trailing delimiter
	Name   string // Leaf test name
}

// ParseNodeID classifies a flat id. Suite ids are only recognized when a
// delimiter is configured; without one the marker suffix is meaningless and
// every non-root id is a leaf.
func ParseNodeID(id, delimiter string) NodeID {
	if id == RootID {
		return NodeID{Kind: KindRoot}
	}
	if delimiter != "" && strings.HasSuffix(id, delimiter+SuiteMarker) {
		return NodeID{Kind: KindSuite, Prefix: strings.TrimSuffix(id, SuiteMarker)}
	}
	return NodeID{Kind: KindLeaf, Name: id}
}

// SuiteID builds the flat id for a suite prefix. The prefix must include its
// trailing delimiter.
func SuiteID(prefix string) string {
	return prefix + SuiteMarker
}
