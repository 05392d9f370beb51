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

import "errors"

// Errors returned by the core operations. Normalization and scoring never
// fail; only structural misuse does. Callers test for these with errors.Is.
var (
	// ErrNotFound is returned when a license name or alias is not present
	// in the store.
	ErrNotFound = errors.New("license not found")

	// ErrDuplicateName is returned when an insertion collides with an
	// existing entry name or with an alias of a different entry.
	ErrDuplicateName = errors.New("duplicate license name")

	// ErrOutOfRange is returned when a view range violates the line-count
	// invariant 0 <= start <= end <= lines.
	ErrOutOfRange = errors.New("view out of range")

	// ErrVersionMismatch is returned when a cache blob carries an
	// unsupported format version tag.
	ErrVersionMismatch = errors.New("cache version mismatch")

	// ErrCorruptData is returned when a cache blob fails checksum,
	// decompression, decoding, or structural validation.
	ErrCorruptData = errors.New("corrupt cache data")

	// ErrNoText is returned when an operation needs line data on a unit
	// that was restored index-only from a compact cache.
	ErrNoText = errors.New("no text data retained")
)
