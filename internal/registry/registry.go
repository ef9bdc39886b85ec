// Package registry holds the flat list of descriptors from the most recent
// load cycle. The list is replaced wholesale on every load and never updated
// in place.
package registry

import (
	"strings"

	"cta/internal/domain"
)

// Registry is the ordered set of currently known tests.
type Registry struct {
	tests []domain.TestDescriptor
	index map[string]int
}

// New creates a Registry over the given descriptors, preserving their order.
func New(tests []domain.TestDescriptor) *Registry {
	index := make(map[string]int, len(tests))
	for i, test := range tests {
		index[test.Name] = i
	}
	return &Registry{tests: tests, index: index}
}

// Empty creates a Registry with no tests.
func Empty() *Registry {
	return New(nil)
}

// All returns every descriptor in registry order.
func (r *Registry) All() []domain.TestDescriptor {
	return r.tests
}

// Len returns the number of known tests.
func (r *Registry) Len() int {
	return len(r.tests)
}

// Lookup finds a descriptor by its unique name.
func (r *Registry) Lookup(name string) (domain.TestDescriptor, bool) {
	i, ok := r.index[name]
	if !ok {
		return domain.TestDescriptor{}, false
	}
	return r.tests[i], true
}

// WithPrefix returns every descriptor whose name starts with the suite
// prefix, in registry order.
func (r *Registry) WithPrefix(prefix string) []domain.TestDescriptor {
	var matched []domain.TestDescriptor
	for _, test := range r.tests {
		if strings.HasPrefix(test.Name, prefix) {
			matched = append(matched, test)
		}
	}
	return matched
}
