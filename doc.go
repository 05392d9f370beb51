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

// Package licenseid identifies which known license text a block of
// unstructured input most resembles. It reports a confidence score between
// 0.0 and 1.0 and, for licenses embedded inside larger documents, the line
// range of the best-matching region.
//
// The similarity metric is the Sørensen–Dice coefficient over word bigram
// frequencies of aggressively normalized text. It measures textual
// resemblance only; it makes no statement about licensing obligations.
//
// Example usage:
//
//	f, err := os.Open("licenses.cache")
//	if err != nil {
//		log.Fatal(err)
//	}
//	store, err := licenseid.LoadCache(f)
//	if err != nil {
//		log.Fatal(err)
//	}
//	query := licenseid.NewTextData(string(contents))
//	m := store.Analyze(query)
//	fmt.Printf("%s (confidence: %.3f)\n", m.Name, m.Confidence)
//
// When the top score is too low to trust but high enough to be worth
// digging, OptimizeBounds narrows the query's view to the region that best
// matches the candidate, recovering licenses buried inside source files.
// ScanStrategy packages that decision procedure behind score thresholds.
package licenseid
