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

	"github.com/sergi/go-diff/diffmatchpatch"
)

// The diff/match/patch algorithm, shared across calls.
var dmp = diffmatchpatch.New()

// DiffTexts renders an inline, terminal-colored diff between the normalized
// active views of two text units, for inspecting why a match scored the way
// it did. Index-only units contribute an empty side.
func DiffTexts(query, matched *TextData) string {
	a := strings.Join(query.viewLines(), "\n")
	b := strings.Join(matched.viewLines(), "\n")
	diffs := dmp.DiffMain(a, b, true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
