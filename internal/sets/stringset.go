// Copyright 2026 The licenseid Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sets provides sets of strings for keeping track of license and
// alias names.
package sets

import (
	"fmt"
	"sort"
	"strings"
)

// StringSet stores a set of unique string elements.
type StringSet struct {
	set map[string]present
}

type present struct{}

// NewStringSet creates a StringSet containing the supplied initial string
// elements.
func NewStringSet(elements ...string) *StringSet {
	s := &StringSet{set: make(map[string]present)}
	s.Insert(elements...)
	return s
}

// Copy returns a newly allocated copy of the supplied StringSet.
func (s *StringSet) Copy() *StringSet {
	c := NewStringSet()
	if s != nil {
		for e := range s.set {
			c.set[e] = present{}
		}
	}
	return c
}

// Insert zero or more string elements into the StringSet.
func (s *StringSet) Insert(elements ...string) {
	for _, e := range elements {
		s.set[e] = present{}
	}
}

// Delete zero or more string elements from the StringSet. Deleting an element
// that isn't present is a no-op.
func (s *StringSet) Delete(elements ...string) {
	for _, e := range elements {
		delete(s.set, e)
	}
}

// Contains returns true if the element is present in the StringSet.
func (s *StringSet) Contains(element string) bool {
	_, ok := s.set[element]
	return ok
}

// Len returns the number of unique elements in the StringSet.
func (s *StringSet) Len() int {
	return len(s.set)
}

// Empty returns true if the StringSet has no elements.
func (s *StringSet) Empty() bool {
	return len(s.set) == 0
}

// Elements returns the elements of the StringSet in an unspecified order.
func (s *StringSet) Elements() []string {
	elements := make([]string, 0, len(s.set))
	for e := range s.set {
		elements = append(elements, e)
	}
	return elements
}

// Sorted returns the elements of the StringSet in sorted order.
func (s *StringSet) Sorted() []string {
	elements := s.Elements()
	sort.Strings(elements)
	return elements
}

// Equal returns true if the two StringSets contain exactly the same elements.
func (s *StringSet) Equal(other *StringSet) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.set) != len(other.set) {
		return false
	}
	for e := range s.set {
		if _, ok := other.set[e]; !ok {
			return false
		}
	}
	return true
}

// String formats the StringSet elements for debugging.
func (s *StringSet) String() string {
	return fmt.Sprintf("{%s}", strings.Join(s.Sorted(), ", "))
}
