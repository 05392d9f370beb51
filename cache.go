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
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"log"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"licenseid/ngram"
)

// Compression selects the codec wrapped around the cache payload. The
// choice is made when the cache is built; readers detect the codec from the
// payload itself, so a cache is always read by the matching decoder or
// rejected.
type Compression string

const (
	// CompressionGzip is the portable default.
	CompressionGzip Compression = "gzip"
	// CompressionXZ trades slower writes for a higher ratio.
	CompressionXZ Compression = "xz"
)

// Cache blob layout: magic, format version, blake3 checksum of the
// compressed payload, then the payload (a gob-encoded snapshot wrapped in
// the selected compressor).
const (
	cacheVersion   uint16 = 1
	cacheHeaderLen        = 4 + 2 + 32
)

var (
	cacheMagic = [4]byte{'L', 'I', 'D', 'C'}
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// cacheText is the serialized form of one TextData. The original raw text
// and the normalized lines are optional; the gram counts always travel.
type cacheText struct {
	HasOriginal bool
	Original    string
	HasLines    bool
	Lines       []string
	Grams       map[string]int
}

// cacheEntry is the serialized form of one LicenseEntry.
type cacheEntry struct {
	Name     string
	Aliases  []string
	Original cacheText
	Variants []cacheText
}

// cacheSnapshot is the serialized form of a Store. Entries appear in
// insertion order, which the reduction tie-break depends on.
type cacheSnapshot struct {
	Entries []cacheEntry
}

// SaveCache serializes the store, including original texts, into a
// versioned compressed blob. The result is an opaque byte stream intended
// to be written to disk or embedded as a build-time resource.
func (s *Store) SaveCache(w io.Writer, comp Compression) error {
	return s.saveCache(w, comp, true)
}

// SaveCacheCompact is SaveCache with original and normalized texts dropped
// to save space. A store restored from a compact cache can Analyze as
// usual, but its entries are index-only: OptimizeBounds and view changes
// on them fail with ErrNoText, and GetOriginal has nothing to return.
func (s *Store) SaveCacheCompact(w io.Writer, comp Compression) error {
	return s.saveCache(w, comp, false)
}

func (s *Store) saveCache(w io.Writer, comp Compression, withText bool) error {
	s.mu.RLock()
	snapshot := cacheSnapshot{Entries: make([]cacheEntry, 0, len(s.names))}
	for _, name := range s.names {
		entry := s.entries[name]
		ce := cacheEntry{
			Name:     name,
			Aliases:  append([]string(nil), entry.aliases...),
			Original: snapshotText(entry.original, withText),
		}
		for _, variant := range entry.variants {
			ce.Variants = append(ce.Variants, snapshotText(variant, withText))
		}
		snapshot.Entries = append(snapshot.Entries, ce)
	}
	s.mu.RUnlock()

	var payload bytes.Buffer
	zw, err := newCompressor(&payload, comp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(zw).Encode(&snapshot); err != nil {
		return fmt.Errorf("encoding cache: %v", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing cache: %v", err)
	}
	log.Printf("Serialized %d licenses into %d compressed bytes (%s)",
		len(snapshot.Entries), payload.Len(), comp)

	var header [cacheHeaderLen]byte
	copy(header[0:4], cacheMagic[:])
	binary.BigEndian.PutUint16(header[4:6], cacheVersion)
	sum := blake3.Sum256(payload.Bytes())
	copy(header[6:], sum[:])

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err = w.Write(payload.Bytes())
	return err
}

func snapshotText(t *TextData, withText bool) cacheText {
	ct := cacheText{Grams: t.grams.Counts()}
	if !withText {
		return ct
	}
	if text, ok := t.OriginalText(); ok {
		ct.HasOriginal = true
		ct.Original = text
	}
	if t.lines != nil {
		ct.HasLines = true
		ct.Lines = append([]string(nil), t.lines...)
	}
	return ct
}

func newCompressor(w io.Writer, comp Compression) (io.WriteCloser, error) {
	switch comp {
	case CompressionGzip:
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	case CompressionXZ:
		return xz.NewWriter(w)
	}
	return nil, fmt.Errorf("unknown compression scheme %q", comp)
}

// LoadCache reconstructs a Store from a cache blob previously written by
// SaveCache. It fails with ErrVersionMismatch if the blob carries an
// unsupported format version, and ErrCorruptData for any checksum,
// decompression, decoding, or structural failure. Loading never silently
// truncates or substitutes data.
func LoadCache(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading cache: %v", err)
	}
	if len(data) < cacheHeaderLen {
		return nil, fmt.Errorf("cache header truncated at %d bytes: %w", len(data), ErrCorruptData)
	}
	if !bytes.Equal(data[0:4], cacheMagic[:]) {
		return nil, fmt.Errorf("bad cache magic: %w", ErrCorruptData)
	}
	if version := binary.BigEndian.Uint16(data[4:6]); version != cacheVersion {
		return nil, fmt.Errorf("cache format version %d, want %d: %w", version, cacheVersion, ErrVersionMismatch)
	}

	payload := data[cacheHeaderLen:]
	sum := blake3.Sum256(payload)
	if !bytes.Equal(sum[:], data[6:cacheHeaderLen]) {
		return nil, fmt.Errorf("cache checksum mismatch: %w", ErrCorruptData)
	}

	zr, err := newDecompressor(payload)
	if err != nil {
		return nil, err
	}
	var snapshot cacheSnapshot
	if err := gob.NewDecoder(zr).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decoding cache: %v: %w", err, ErrCorruptData)
	}
	return restoreStore(&snapshot)
}

func newDecompressor(payload []byte) (io.Reader, error) {
	switch {
	case bytes.HasPrefix(payload, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("gzip cache payload: %v: %w", err, ErrCorruptData)
		}
		return zr, nil
	case bytes.HasPrefix(payload, xzMagic):
		zr, err := xz.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("xz cache payload: %v: %w", err, ErrCorruptData)
		}
		return zr, nil
	}
	return nil, fmt.Errorf("unrecognized cache compression: %w", ErrCorruptData)
}

// restoreStore rebuilds a Store from a decoded snapshot, validating its
// structure. Any anomaly is a hard failure rather than a degraded store.
func restoreStore(snapshot *cacheSnapshot) (*Store, error) {
	store := NewStore()
	for _, ce := range snapshot.Entries {
		original, err := restoreText(ce.Original)
		if err != nil {
			return nil, fmt.Errorf("license %q: %v: %w", ce.Name, err, ErrCorruptData)
		}
		entry := &LicenseEntry{name: ce.Name, original: original}
		for i, cv := range ce.Variants {
			variant, err := restoreText(cv)
			if err != nil {
				return nil, fmt.Errorf("license %q variant %d: %v: %w", ce.Name, i, err, ErrCorruptData)
			}
			entry.variants = append(entry.variants, variant)
		}
		if err := store.insertEntry(entry); err != nil {
			return nil, fmt.Errorf("cache structure: %v: %w", err, ErrCorruptData)
		}
		for _, alias := range ce.Aliases {
			if _, ok := store.entries[alias]; ok {
				return nil, fmt.Errorf("alias %q shadows an entry: %w", alias, ErrCorruptData)
			}
			if target, ok := store.aliases[alias]; ok && target != ce.Name {
				return nil, fmt.Errorf("alias %q names both %q and %q: %w", alias, target, ce.Name, ErrCorruptData)
			}
			store.aliases[alias] = ce.Name
			entry.aliases = append(entry.aliases, alias)
		}
	}
	return store, nil
}

// restoreText rebuilds a TextData from its serialized form, checking that
// the stored grams are consistent with the stored lines when both travel.
func restoreText(ct cacheText) (*TextData, error) {
	// Grams may be nil here: gob drops empty maps, and an empty license
	// text legitimately has no bigrams.
	grams := ngram.FromCounts(bigramWidth, ct.Grams)
	t := newIndexOnlyTextData(grams)
	if ct.HasLines {
		t.lines = append([]string{}, ct.Lines...)
		t.viewEnd = len(t.lines)
		if recomputed := ngram.FromLines(t.lines, bigramWidth); recomputed.Len() != grams.Len() {
			return nil, fmt.Errorf("gram table disagrees with line data")
		}
	}
	if ct.HasOriginal {
		t.original = ct.Original
		t.hasOriginal = true
	}
	return t, nil
}
