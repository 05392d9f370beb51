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
	"fmt"

	"licenseid/ngram"
)

const (
	// optimizeEpsilon is the minimum score improvement a boundary move
	// must produce to be taken.
	optimizeEpsilon = 1e-6

	// optimizeMaxIterations bounds the local search so it terminates on
	// pathological inputs. Each iteration applies at most one boundary
	// move, so real documents converge in far fewer.
	optimizeMaxIterations = 1000
)

// OptimizeBounds narrows the unit's view to the contiguous line range that
// best matches the target, for documents that embed a license inside
// unrelated surrounding text. It is a local search over the two view
// boundaries: each iteration probes moves of geometrically spaced sizes in
// both directions from each boundary and applies the single most improving
// one, stopping when no probe improves the score. This trades global
// optimality for near-linear cost versus trying all O(n²) sub-ranges.
//
// On success the unit's view is set to the best range found and its score
// against the target is returned. The search always starts from the full
// line range, ignoring any previously set view. Fails with ErrNoText if the
// unit was restored without line data.
func (t *TextData) OptimizeBounds(target *TextData) (float64, error) {
	if t.lines == nil {
		return 0, fmt.Errorf("optimize bounds: %w", ErrNoText)
	}

	n := len(t.lines)
	score := func(start, end int) float64 {
		return ngram.FromLines(t.lines[start:end], bigramWidth).Dice(target.grams)
	}

	start, end := 0, n
	best := score(start, end)
	steps := probeSteps(n)

	for iter := 0; iter < optimizeMaxIterations; iter++ {
		moveStart, moveEnd, moveScore := start, end, best
		for _, step := range steps {
			for _, candidate := range [4][2]int{
				{start + step, end},
				{start - step, end},
				{start, end - step},
				{start, end + step},
			} {
				cs, ce := candidate[0], candidate[1]
				if cs < 0 || ce > n || cs >= ce {
					continue
				}
				if sc := score(cs, ce); sc > moveScore+optimizeEpsilon {
					moveStart, moveEnd, moveScore = cs, ce, sc
				}
			}
		}
		if moveStart == start && moveEnd == end {
			break
		}
		start, end, best = moveStart, moveEnd, moveScore
	}

	// Cannot fail: the range was validated against n above.
	if err := t.SetView(start, end); err != nil {
		return 0, err
	}
	return best, nil
}

// probeSteps returns the candidate boundary move sizes for a document of n
// lines: 1, 2, 4, ... up to half the document. Probing at several scales
// lets the search cross large spans of unrelated text quickly and still
// settle on exact line boundaries.
func probeSteps(n int) []int {
	var steps []int
	for step := 1; step <= n/2 || step == 1; step *= 2 {
		steps = append(steps, step)
		if step >= n {
			break
		}
	}
	return steps
}
