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

import "fmt"

// ScanStatus classifies the outcome of a Scan.
type ScanStatus int

const (
	// StatusUnknown means no license scored above the thresholds.
	StatusUnknown ScanStatus = iota
	// StatusIdentified means the whole input matched a license at or
	// above the confidence threshold.
	StatusIdentified
	// StatusPossibleEmbedded means the input as a whole did not match,
	// but bounds optimization found one or more embedded regions that do.
	StatusPossibleEmbedded
)

// String returns a human-readable name for the status.
func (s ScanStatus) String() string {
	switch s {
	case StatusIdentified:
		return "identified"
	case StatusPossibleEmbedded:
		return "possible-embedded"
	case StatusUnknown:
		return "unknown"
	}
	return fmt.Sprintf("ScanStatus(%d)", int(s))
}

// ContainedMatch is a license found embedded inside a larger document, with
// the 1-based inclusive line range it occupies.
type ContainedMatch struct {
	Match
	StartLine int
	EndLine   int
}

// ScanResult is the outcome of running the scan decision procedure.
type ScanResult struct {
	// Status of the scan.
	Status ScanStatus
	// Match is the whole-document analysis result, regardless of status.
	Match Match
	// Containing lists embedded matches discovered by bounds
	// optimization, in the order found. Empty unless Status is
	// StatusPossibleEmbedded.
	Containing []ContainedMatch
}

// ScanStrategy is the decision procedure layered over Analyze: try a full
// match, fall back to bounds optimization for embedded licenses, fall back
// to reporting unknown. It is driven entirely by score thresholds.
type ScanStrategy struct {
	// Store holds the known licenses to match against.
	Store *Store
	// ConfidenceThreshold is the score at or above which a
	// whole-document match is accepted outright.
	ConfidenceThreshold float64
	// OptimizeThreshold is the score at or above which a failed
	// whole-document match is still worth digging into with bounds
	// optimization, and the minimum score an optimized region must reach
	// to be reported.
	OptimizeThreshold float64
	// Optimize enables the embedded-license search.
	Optimize bool
	// MaxPasses bounds how many embedded regions are searched for; each
	// pass masks the region already found and re-scans the remainder.
	// Zero or negative means a single pass.
	MaxPasses int
}

// Scan analyzes the query against the store and applies the threshold state
// machine. The query itself is never mutated; the embedded-license search
// works on a private copy. Fails with ErrNoText only when optimization is
// required on a unit restored without line data.
func (ss *ScanStrategy) Scan(query *TextData) (ScanResult, error) {
	m := ss.Store.Analyze(query)
	res := ScanResult{Status: StatusUnknown, Match: m}

	if m.Data != nil && m.Confidence >= ss.ConfidenceThreshold {
		res.Status = StatusIdentified
		return res, nil
	}
	if !ss.Optimize || m.Data == nil || m.Confidence < ss.OptimizeThreshold {
		return res, nil
	}

	passes := ss.MaxPasses
	if passes <= 0 {
		passes = 1
	}

	scratch := query.Clone()
	current := m
	for pass := 0; pass < passes; pass++ {
		score, err := scratch.OptimizeBounds(current.Data)
		if err != nil {
			return res, err
		}
		if score < ss.OptimizeThreshold {
			break
		}
		startLine, endLine := scratch.MatchedLines()
		contained := current
		contained.Confidence = score
		res.Containing = append(res.Containing, ContainedMatch{
			Match:     contained,
			StartLine: startLine,
			EndLine:   endLine,
		})

		// Mask the region just found and re-scan the remainder for
		// further embedded licenses.
		viewStart, viewEnd := scratch.View()
		if err := scratch.SetView(0, scratch.LineCount()); err != nil {
			return res, err
		}
		if err := scratch.WhiteOut(viewStart, viewEnd); err != nil {
			return res, err
		}
		next := ss.Store.Analyze(scratch)
		if next.Data == nil || next.Confidence < ss.OptimizeThreshold {
			break
		}
		current = next
	}

	if len(res.Containing) > 0 {
		res.Status = StatusPossibleEmbedded
	}
	return res, nil
}
