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
	"strings"
	"testing"
)

func newTestStrategy(t *testing.T) *ScanStrategy {
	t.Helper()
	return &ScanStrategy{
		Store:               buildStore(t),
		ConfidenceThreshold: 0.95,
		OptimizeThreshold:   0.35,
		Optimize:            true,
		MaxPasses:           3,
	}
}

func TestScanIdentified(t *testing.T) {
	ss := newTestStrategy(t)
	res, err := ss.Scan(NewTextData(mitLicense))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Status != StatusIdentified {
		t.Fatalf("Status = %v, want identified", res.Status)
	}
	if res.Match.Name != "MIT" || res.Match.Confidence != 1.0 {
		t.Errorf("Match = (%q, %v), want (MIT, 1.0)", res.Match.Name, res.Match.Confidence)
	}
	if len(res.Containing) != 0 {
		t.Errorf("identified scan reported %d contained matches", len(res.Containing))
	}
}

func TestScanUnknown(t *testing.T) {
	ss := newTestStrategy(t)
	query := strings.Join(sourceCodeLines(40), "\n")
	res, err := ss.Scan(NewTextData(query))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Status != StatusUnknown {
		t.Errorf("Status = %v, want unknown", res.Status)
	}
	if len(res.Containing) != 0 {
		t.Errorf("unknown scan reported %d contained matches", len(res.Containing))
	}
}

func TestScanEmbedded(t *testing.T) {
	ss := newTestStrategy(t)
	doc, licStart, licEnd := embedLicense(mitLicense, 25, 25)
	query := NewTextData(doc)
	res, err := ss.Scan(query)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Status != StatusPossibleEmbedded {
		t.Fatalf("Status = %v, want possible-embedded", res.Status)
	}
	if len(res.Containing) != 1 {
		t.Fatalf("Containing = %d matches, want 1", len(res.Containing))
	}

	c := res.Containing[0]
	if c.Name != "MIT" {
		t.Errorf("contained match Name = %q, want MIT", c.Name)
	}
	if c.Confidence < 0.99 {
		t.Errorf("contained match Confidence = %v, want near 1.0", c.Confidence)
	}
	// Line numbers are 1-based inclusive; the boundary can drift over blank
	// edge lines, so allow slack.
	if c.StartLine < licStart-4 || c.StartLine > licStart+6 {
		t.Errorf("StartLine = %d, want near %d", c.StartLine, licStart+1)
	}
	if c.EndLine < licEnd-5 || c.EndLine > licEnd+5 {
		t.Errorf("EndLine = %d, want near %d", c.EndLine, licEnd)
	}

	// The caller's query is untouched by the scan.
	if start, end := query.View(); start != 0 || end != query.LineCount() {
		t.Errorf("scan narrowed the caller's view to [%d, %d)", start, end)
	}
	if got := query.Score(NewTextData(mitLicense)); got == 0.0 {
		t.Error("scan whited out the caller's text")
	}
}

func TestScanTwoEmbedded(t *testing.T) {
	// Two different licenses buried in one file.
	head := sourceCodeLines(15)
	mid := sourceCodeLines(15)
	tail := sourceCodeLines(15)
	var all []string
	all = append(all, head...)
	all = append(all, strings.Split(mitLicense, "\n")...)
	all = append(all, mid...)
	all = append(all, strings.Split(apacheHeader, "\n")...)
	all = append(all, tail...)
	doc := strings.Join(all, "\n")

	ss := newTestStrategy(t)
	res, err := ss.Scan(NewTextData(doc))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Status != StatusPossibleEmbedded {
		t.Fatalf("Status = %v, want possible-embedded", res.Status)
	}
	if len(res.Containing) != 2 {
		t.Fatalf("Containing = %d matches, want 2", len(res.Containing))
	}
	// The larger license dominates the whole-document score, so it is
	// found and masked first.
	if res.Containing[0].Name != "MIT" {
		t.Errorf("first contained match = %q, want MIT", res.Containing[0].Name)
	}
	if res.Containing[1].Name != "Apache-2.0" {
		t.Errorf("second contained match = %q, want Apache-2.0", res.Containing[1].Name)
	}
	for _, c := range res.Containing {
		if c.Confidence < 0.99 {
			t.Errorf("contained match %q Confidence = %v, want near 1.0", c.Name, c.Confidence)
		}
		if c.StartLine <= 0 || c.EndLine < c.StartLine {
			t.Errorf("contained match %q has invalid line range (%d, %d)", c.Name, c.StartLine, c.EndLine)
		}
	}
	if res.Containing[1].StartLine <= res.Containing[0].EndLine {
		t.Errorf("second match at lines (%d, %d) does not follow the first ending at %d",
			res.Containing[1].StartLine, res.Containing[1].EndLine, res.Containing[0].EndLine)
	}
}

func TestScanMaxPassesLimit(t *testing.T) {
	head := sourceCodeLines(15)
	mid := sourceCodeLines(15)
	var all []string
	all = append(all, head...)
	all = append(all, strings.Split(mitLicense, "\n")...)
	all = append(all, mid...)
	all = append(all, strings.Split(apacheHeader, "\n")...)
	doc := strings.Join(all, "\n")

	ss := newTestStrategy(t)
	ss.MaxPasses = 1
	res, err := ss.Scan(NewTextData(doc))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Containing) != 1 {
		t.Errorf("Containing = %d matches with a single pass, want 1", len(res.Containing))
	}
}

func TestScanOptimizeDisabled(t *testing.T) {
	ss := newTestStrategy(t)
	ss.Optimize = false
	doc, _, _ := embedLicense(mitLicense, 25, 25)
	res, err := ss.Scan(NewTextData(doc))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if res.Status != StatusUnknown {
		t.Errorf("Status = %v, want unknown with optimization disabled", res.Status)
	}
	if len(res.Containing) != 0 {
		t.Errorf("Containing = %d matches with optimization disabled", len(res.Containing))
	}
}

func TestScanStatusString(t *testing.T) {
	tests := []struct {
		status ScanStatus
		want   string
	}{
		{StatusUnknown, "unknown"},
		{StatusIdentified, "identified"},
		{StatusPossibleEmbedded, "possible-embedded"},
		{ScanStatus(42), "ScanStatus(42)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("ScanStatus(%d).String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}
