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

package licenseid

import (
	"runtime"
	"sync"
)

// Match is the result of comparing a query against the store. A Confidence
// of 1.0 indicates an identical normalized text; 0.0 a complete mismatch.
type Match struct {
	// Name of the closest matching license. This is always a canonical
	// name present in the store, regardless of the score, except for the
	// empty-store sentinel where it is "".
	Name string
	// Confidence score of the match, in [0, 1].
	Confidence float64
	// Aliases the matched license is also known under.
	Aliases []string
	// IsVariant is true when a variant text, not the canonical text,
	// produced the score.
	IsVariant bool
	// Data references the matched text unit inside the store, for
	// diagnostics or bounds optimization. Nil for the empty-store
	// sentinel.
	Data *TextData
}

// entryScore is the per-entry result of the parallel scoring pass.
type entryScore struct {
	score   float64
	variant int // index into the entry's variants, or -1 for the canonical text
}

// Analyze finds the license in the store that most closely matches the
// query's active view. Every entry (canonical and variant texts) is scored
// independently across a worker pool sized to the available parallelism;
// the reduction keeps the maximum score, breaking ties in favor of the
// first-inserted entry so results do not depend on scheduling order.
//
// Analyze never fails: an empty store yields a zero-confidence Match.
func (s *Store) Analyze(query *TextData) Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.names) == 0 {
		return Match{}
	}

	scores := make([]entryScore, len(s.names))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	if workers > len(s.names) {
		workers = len(s.names)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i] = s.scoreEntry(s.entries[s.names[i]], query)
			}
		}()
	}
	for i := range s.names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Deterministic reduction: strict improvement only, so the
	// first-inserted entry wins ties.
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].score > scores[best].score {
			best = i
		}
	}

	entry := s.entries[s.names[best]]
	m := Match{
		Name:       entry.name,
		Confidence: scores[best].score,
		Aliases:    append([]string(nil), entry.aliases...),
		Data:       entry.original,
	}
	if v := scores[best].variant; v >= 0 {
		m.IsVariant = true
		m.Data = entry.variants[v]
	}
	return m
}

// scoreEntry scores the query against an entry's canonical text and all of
// its variants, keeping the best. The canonical text wins ties, and earlier
// variants win over later ones, mirroring the store-wide tie-break.
func (s *Store) scoreEntry(entry *LicenseEntry, query *TextData) entryScore {
	best := entryScore{score: query.Score(entry.original), variant: -1}
	for i, variant := range entry.variants {
		if score := query.Score(variant); score > best.score {
			best = entryScore{score: score, variant: i}
		}
	}
	return best
}
