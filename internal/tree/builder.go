package tree

import (
	"strings"

	"cta/internal/domain"
)

// Build constructs the display hierarchy from the flat registry order.
//
// With an empty delimiter every descriptor becomes a direct child of root.
// Otherwise each name is split on the delimiter: every segment but the last
// identifies a suite (created lazily on first reference, reused afterwards)
// and the last segment becomes the leaf's label. Given the same input order
// and delimiter the produced tree is structurally identical across calls.
func Build(tests []domain.TestDescriptor, delimiter string) *SuiteNode {
	root := &SuiteNode{ID: domain.RootID, Label: "CTest"}

	for _, test := range tests {
		if delimiter == "" {
			root.Children = append(root.Children, newTestNode(test, test.Name))
			continue
		}

		segments := strings.Split(test.Name, delimiter)
		label := segments[len(segments)-1]
		if label == "" {
			label = UnnamedLabel
		}

		parent := root
		prefix := ""
		for _, segment := range segments[:len(segments)-1] {
			prefix += segment + delimiter
			parent = parent.childSuite(domain.SuiteID(prefix), segment)
		}
		parent.Children = append(parent.Children, newTestNode(test, label))
	}

	return root
}

// childSuite finds the suite with the given id among the parent's children,
// creating and appending it on first reference.
func (s *SuiteNode) childSuite(id, label string) *SuiteNode {
	for _, child := range s.Children {
		if suite, ok := child.(*SuiteNode); ok && suite.ID == id {
			return suite
		}
	}
	suite := &SuiteNode{ID: id, Label: label}
	s.Children = append(s.Children, suite)
	return suite
}

func newTestNode(test domain.TestDescriptor, label string) *TestNode {
	return &TestNode{
		ID:          test.Name,
		Label:       label,
		Description: test.Name,
		Test:        test,
	}
}
