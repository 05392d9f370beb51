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
	"licenseid/normalizer"
)

// bigramWidth is the gram width used throughout the matching engine.
const bigramWidth = 2

// TextData is a normalized, indexed view of a text. It owns the original raw
// text (when retained), the normalized lines derived from it, and a bigram
// frequency set covering the active view: a half-open line range
// [start, end) that defaults to the full text.
//
// Changing the view recomputes only the bigram set. The raw and normalized
// text are never mutated by a view change, so re-scoring a sub-range never
// re-runs normalization.
type TextData struct {
	original    string
	hasOriginal bool
	lines       []string // nil when restored index-only from a compact cache
	viewStart   int
	viewEnd     int
	grams       *ngram.Set
}

// NewTextData normalizes raw text and indexes its full line range.
func NewTextData(raw string) *TextData {
	lines := normalizer.Normalize(raw)
	return &TextData{
		original:    raw,
		hasOriginal: true,
		lines:       lines,
		viewEnd:     len(lines),
		grams:       ngram.FromLines(lines, bigramWidth),
	}
}

// NewTextDataFromLines builds a TextData directly from already-normalized
// lines, without an original text. The cache codec and tests use this.
func NewTextDataFromLines(lines []string) *TextData {
	owned := append([]string(nil), lines...)
	return &TextData{
		lines:   owned,
		viewEnd: len(owned),
		grams:   ngram.FromLines(owned, bigramWidth),
	}
}

// newIndexOnlyTextData builds a unit holding only a precomputed bigram set.
// Operations that need line data fail on it with ErrNoText.
func newIndexOnlyTextData(grams *ngram.Set) *TextData {
	return &TextData{grams: grams}
}

// Clone returns an independent deep copy of the TextData, including its
// current view.
func (t *TextData) Clone() *TextData {
	c := *t
	if t.lines != nil {
		c.lines = append([]string{}, t.lines...)
	}
	c.grams = ngram.FromCounts(t.grams.N(), t.grams.Counts())
	return &c
}

// OriginalText returns the raw text the unit was built from, and whether it
// was retained. Units restored from a compact cache have no original.
func (t *TextData) OriginalText() (string, bool) {
	return t.original, t.hasOriginal
}

// LineCount returns the total number of normalized lines.
func (t *TextData) LineCount() int {
	return len(t.lines)
}

// Lines returns a copy of the normalized lines in the active view.
func (t *TextData) Lines() []string {
	if t.lines == nil {
		return nil
	}
	return append([]string(nil), t.lines[t.viewStart:t.viewEnd]...)
}

// View returns the active line range [start, end).
func (t *TextData) View() (start, end int) {
	return t.viewStart, t.viewEnd
}

// MatchedLines returns the active view as 1-based inclusive line numbers
// for display. An empty view reports (0, 0).
func (t *TextData) MatchedLines() (start, end int) {
	if t.viewStart == t.viewEnd {
		return 0, 0
	}
	return t.viewStart + 1, t.viewEnd
}

// checkRange validates a view range against the line-count invariant.
func (t *TextData) checkRange(start, end int) error {
	if t.lines == nil {
		return fmt.Errorf("text restored without line data: %w", ErrNoText)
	}
	if start < 0 || end < start || end > len(t.lines) {
		return fmt.Errorf("range [%d, %d) of %d lines: %w", start, end, len(t.lines), ErrOutOfRange)
	}
	return nil
}

// SetView changes the active view to [start, end) and recomputes the bigram
// set from the covered lines. Normalization is not re-run.
func (t *TextData) SetView(start, end int) error {
	if err := t.checkRange(start, end); err != nil {
		return err
	}
	t.viewStart, t.viewEnd = start, end
	t.grams = ngram.FromLines(t.lines[start:end], bigramWidth)
	return nil
}

// WhiteOut blanks the lines in [start, end), removing them from
// consideration while keeping the rest of the view. It is the inverse of a
// view: callers use it to mask an already-identified match before searching
// the remainder of a document for further matches. The active view is
// unchanged; the bigram set is recomputed.
func (t *TextData) WhiteOut(start, end int) error {
	if err := t.checkRange(start, end); err != nil {
		return err
	}
	for i := start; i < end; i++ {
		t.lines[i] = ""
	}
	t.grams = ngram.FromLines(t.lines[t.viewStart:t.viewEnd], bigramWidth)
	return nil
}

// Score computes the Sørensen–Dice coefficient between the bigram sets of
// the two units' active views. It never fails: degenerate inputs (empty or
// single-token views) score 0.0.
func (t *TextData) Score(other *TextData) float64 {
	return t.grams.Dice(other.grams)
}

// viewLines exposes the active view's lines for diffing and diagnostics.
func (t *TextData) viewLines() []string {
	if t.lines == nil {
		return nil
	}
	return t.lines[t.viewStart:t.viewEnd]
}
