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
	"sync"

	"licenseid/internal/sets"
)

// LicenseEntry is one known license in a Store: a canonical reference text,
// the alias names it is also known under, and any variant texts registered
// under those aliases.
type LicenseEntry struct {
	name     string
	original *TextData
	aliases  []string
	variants []*TextData
}

// Name returns the canonical license name.
func (e *LicenseEntry) Name() string {
	return e.name
}

// Original returns the canonical reference text unit.
func (e *LicenseEntry) Original() *TextData {
	return e.original
}

// Aliases returns the entry's alias names in insertion order.
func (e *LicenseEntry) Aliases() []string {
	return append([]string(nil), e.aliases...)
}

// Variants returns the entry's variant text units in insertion order.
func (e *LicenseEntry) Variants() []*TextData {
	return append([]*TextData(nil), e.variants...)
}

// Store is an in-memory corpus of known licenses supporting best-match
// search. Entries are kept in insertion order; when two entries score
// identically against a query the first-inserted one wins, so results are
// deterministic.
//
// A Store may be built up with AddLicense/AddVariant, or restored from a
// prebuilt cache with LoadCache. Mutations take the writer lock; Analyze
// holds the reader lock, so adds never interleave with an in-flight search.
type Store struct {
	mu      sync.RWMutex
	names   []string
	entries map[string]*LicenseEntry
	aliases map[string]string // alias -> canonical name
}

// NewStore creates an empty Store. More often, LoadCache is what you want:
// building a store from raw texts is much slower than restoring one.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*LicenseEntry),
		aliases: make(map[string]string),
	}
}

// Len returns the number of canonical licenses in the store. Aliases and
// variants are not counted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Empty returns true if the store holds no licenses.
func (s *Store) Empty() bool {
	return s.Len() == 0
}

// reservedNames returns the set of all names already claimed by entries or
// aliases. Callers must hold the lock.
func (s *Store) reservedNames() *sets.StringSet {
	reserved := sets.NewStringSet(s.names...)
	for alias := range s.aliases {
		reserved.Insert(alias)
	}
	return reserved
}

// AddLicense normalizes and indexes raw text and inserts it under the given
// canonical name. It fails with ErrDuplicateName if the name collides with
// an existing entry or alias.
func (s *Store) AddLicense(name, raw string) error {
	data := NewTextData(raw)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertEntry(&LicenseEntry{name: name, original: data})
}

// insertEntry adds a fully-built entry. Callers must hold the writer lock.
func (s *Store) insertEntry(entry *LicenseEntry) error {
	if s.reservedNames().Contains(entry.name) {
		return fmt.Errorf("license %q: %w", entry.name, ErrDuplicateName)
	}
	s.entries[entry.name] = entry
	s.names = append(s.names, entry.name)
	return nil
}

// AddVariant registers a variant text of an existing canonical license under
// an alias name. The variant participates in Analyze scoring; a match
// against it is still reported under the canonical name. It fails with
// ErrNotFound if the canonical entry is absent, and ErrDuplicateName if the
// alias collides with an entry or with an alias of a different entry.
func (s *Store) AddVariant(canonical, alias, raw string) error {
	data := NewTextData(raw)
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[canonical]
	if !ok {
		return fmt.Errorf("license %q: %w", canonical, ErrNotFound)
	}
	if _, ok := s.entries[alias]; ok {
		return fmt.Errorf("alias %q: %w", alias, ErrDuplicateName)
	}
	if target, ok := s.aliases[alias]; ok && target != canonical {
		return fmt.Errorf("alias %q already names %q: %w", alias, target, ErrDuplicateName)
	}

	if _, ok := s.aliases[alias]; !ok {
		s.aliases[alias] = canonical
		entry.aliases = append(entry.aliases, alias)
	}
	entry.variants = append(entry.variants, data)
	return nil
}

// Licenses returns the canonical license names in insertion order. Aliases
// are excluded.
func (s *Store) Licenses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.names...)
}

// resolve maps a name or alias to its entry. Callers must hold the lock.
func (s *Store) resolve(name string) (*LicenseEntry, bool) {
	if entry, ok := s.entries[name]; ok {
		return entry, true
	}
	if canonical, ok := s.aliases[name]; ok {
		return s.entries[canonical], true
	}
	return nil, false
}

// Aliases returns the alias names of a license. The name may itself be an
// alias. Fails with ErrNotFound if no such license exists.
func (s *Store) Aliases(name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.resolve(name)
	if !ok {
		return nil, fmt.Errorf("license %q: %w", name, ErrNotFound)
	}
	return append([]string(nil), entry.aliases...), nil
}

// SetAliases replaces the alias set of a canonical license. Existing variant
// texts are kept. Fails with ErrNotFound if the entry is absent and
// ErrDuplicateName if any new alias collides with an entry or with an alias
// of a different entry.
func (s *Store) SetAliases(name string, aliases []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("license %q: %w", name, ErrNotFound)
	}

	unique := sets.NewStringSet()
	for _, alias := range aliases {
		if _, ok := s.entries[alias]; ok {
			return fmt.Errorf("alias %q: %w", alias, ErrDuplicateName)
		}
		if target, ok := s.aliases[alias]; ok && target != name {
			return fmt.Errorf("alias %q already names %q: %w", alias, target, ErrDuplicateName)
		}
		unique.Insert(alias)
	}

	for _, old := range entry.aliases {
		delete(s.aliases, old)
	}
	entry.aliases = nil
	for _, alias := range aliases {
		if !unique.Contains(alias) {
			continue // already installed once
		}
		unique.Delete(alias)
		s.aliases[alias] = name
		entry.aliases = append(entry.aliases, alias)
	}
	return nil
}

// GetLicense returns the entry for a license name or alias. Fails with
// ErrNotFound if absent.
func (s *Store) GetLicense(name string) (*LicenseEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.resolve(name)
	if !ok {
		return nil, fmt.Errorf("license %q: %w", name, ErrNotFound)
	}
	return entry, nil
}

// GetOriginal returns the raw text of a license. Fails with ErrNotFound if
// the name is absent, and ErrNoText if the store was restored from a compact
// cache that dropped original texts.
func (s *Store) GetOriginal(name string) (string, error) {
	entry, err := s.GetLicense(name)
	if err != nil {
		return "", err
	}
	text, ok := entry.original.OriginalText()
	if !ok {
		return "", fmt.Errorf("license %q: %w", name, ErrNoText)
	}
	return text, nil
}
