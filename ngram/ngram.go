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

// Package ngram builds word n-gram frequency tables from normalized lines
// and scores them against each other with the Sørensen–Dice coefficient.
// The license matching engine uses bigrams (n=2).
package ngram

import "strings"

// Set is a frequency table of word n-grams. Grams are counted with
// multiplicity so that repeated phrasing carries proportional weight.
type Set struct {
	grams map[string]int
	n     int
	size  int
}

// NewSet creates an empty Set for n-word grams.
func NewSet(n int) *Set {
	return &Set{grams: make(map[string]int), n: n}
}

// FromLines builds a Set from normalized lines. Each line is tokenized on
// whitespace and adjacent tokens within the line form a gram; grams never
// cross line boundaries, since line structure is semantically meaningful.
// Empty lines contribute nothing.
func FromLines(lines []string, n int) *Set {
	s := NewSet(n)
	for _, line := range lines {
		s.AddLine(line)
	}
	return s
}

// AddLine tokenizes a single line and adds its grams to the Set.
func (s *Set) AddLine(line string) {
	words := strings.Fields(line)
	if len(words) < s.n {
		return
	}
	for i := 0; i+s.n <= len(words); i++ {
		s.add(strings.Join(words[i:i+s.n], " "))
	}
}

func (s *Set) add(gram string) {
	s.grams[gram]++
	s.size++
}

// Get returns the number of occurrences of the given gram.
func (s *Set) Get(gram string) int {
	return s.grams[gram]
}

// N returns the gram width of the Set.
func (s *Set) N() int {
	return s.n
}

// Len returns the total number of grams in the Set, with multiplicity.
func (s *Set) Len() int {
	return s.size
}

// Empty returns true if the Set contains no grams.
func (s *Set) Empty() bool {
	return s.size == 0
}

// Dice computes the Sørensen–Dice coefficient between the two Sets:
// 2*|intersection| / (|A|+|B|), where the intersection weight sums the
// smaller count of each shared gram. The result is clamped to [0, 1].
//
// Two empty Sets score 0.0 rather than faulting on the zero denominator;
// short and empty inputs are expected, not an error. Sets of different gram
// widths are incomparable and also score 0.0.
func (s *Set) Dice(other *Set) float64 {
	if s.n != other.n {
		return 0.0
	}
	total := s.size + other.size
	if total == 0 {
		return 0.0
	}

	// Iterate the smaller table.
	x, y := s, other
	if y.size < x.size {
		x, y = y, x
	}

	matches := 0
	for gram, count := range x.grams {
		if c := y.grams[gram]; c < count {
			matches += c
		} else {
			matches += count
		}
	}

	score := 2.0 * float64(matches) / float64(total)
	if score < 0.0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// Counts returns a copy of the gram frequency table. It is used by the cache
// codec to persist a Set without exposing the internal map.
func (s *Set) Counts() map[string]int {
	counts := make(map[string]int, len(s.grams))
	for gram, count := range s.grams {
		counts[gram] = count
	}
	return counts
}

// FromCounts reconstructs a Set from a persisted frequency table.
func FromCounts(n int, counts map[string]int) *Set {
	s := NewSet(n)
	for gram, count := range counts {
		s.grams[gram] = count
		s.size += count
	}
	return s
}
