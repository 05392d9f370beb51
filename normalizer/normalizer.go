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

// Package normalizer converts raw license text into a canonical line-based
// form suitable for comparison. Normalization is deterministic, total, and
// idempotent: it never fails, and re-normalizing already-normalized text
// yields the same lines.
//
// The line count of the input is always preserved. Lines that carry no
// license identity (copyright statements, bare license titles) are blanked
// rather than removed, so that line indices in the normalized form map
// directly back to the raw input.
package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeFunc transforms a single line of text. Each function is applied in
// order to every line prior to comparison.
type NormalizeFunc func(string) string

var (
	junkRegexp       = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}\pP]+`)
	urlRegexp        = regexp.MustCompile(`https?://\S+`)
	horizontalWS     = regexp.MustCompile(`[ \t\p{Zs}\\/|\x{2044}]+`)
	quotesRegexp     = regexp.MustCompile(`["'` + "`" + `\p{Pi}\p{Pf}]+`)
	dashRegexp       = regexp.MustCompile(`\p{Pd}+`)
	openRegexp       = regexp.MustCompile(`\p{Ps}+`)
	closeRegexp      = regexp.MustCompile(`\p{Pe}+`)
	connectorRegexp  = regexp.MustCompile(`\p{Pc}+`)
	copySignRegexp   = regexp.MustCompile(`[©Ⓒⓒ]`)
	copyrightRegexp  = regexp.MustCompile(`^copyright\b.*$`)
	yearEntityRegexp = regexp.MustCompile(`^(\(c\) +)?\d{4}([,-] ?\d{4})* +.+$`)
	titleRegexp      = regexp.MustCompile(`^(the )?(\S+ ){1,5}licen[sc]e,?( ?\(?(version |v)?\d+(\.\d+)*\)?)?( \(\S+\))?$`)
)

// URLPlaceholder is the fixed token substituted for URL-like substrings.
// Hosting mirrors alter URLs without altering license identity, so all URLs
// compare equal.
const URLPlaceholder = "http://blackboxed/url"

// NFC canonicalizes the line to Unicode Normalization Form C so that visually
// identical characters compare equal.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// Lowercase case-folds the line.
func Lowercase(s string) string {
	return strings.ToLower(s)
}

// CanonicalizeCopyrightSign maps copyright-sign glyphs to "(c)".
func CanonicalizeCopyrightSign(s string) string {
	return copySignRegexp.ReplaceAllString(s, "(c)")
}

// RemoveJunk strips characters that are neither word-like, whitespace, nor
// punctuation.
func RemoveJunk(s string) string {
	return junkRegexp.ReplaceAllString(s, "")
}

// BlackboxURLs replaces URL-like substrings with URLPlaceholder.
func BlackboxURLs(s string) string {
	return urlRegexp.ReplaceAllString(s, URLPlaceholder)
}

// FlattenWhitespace collapses runs of horizontal whitespace, including
// slashes, backslashes, and pipes, down to a single space.
func FlattenWhitespace(s string) string {
	return horizontalWS.ReplaceAllString(s, " ")
}

// NormalizePunctuation maps the many quote, dash, bracket, and connector
// glyph variants to a single representative form each.
func NormalizePunctuation(s string) string {
	s = quotesRegexp.ReplaceAllString(s, "'")
	s = dashRegexp.ReplaceAllString(s, "-")
	s = openRegexp.ReplaceAllString(s, "(")
	s = closeRegexp.ReplaceAllString(s, ")")
	s = connectorRegexp.ReplaceAllString(s, "_")
	return s
}

// TrimLine removes leading and trailing whitespace.
func TrimLine(s string) string {
	return strings.TrimSpace(s)
}

// LineNormalizers is the ordered per-line pipeline. Order matters: the
// copyright sign must be canonicalized before junk removal would strip it,
// and URLs must be blackboxed before slash flattening would split them.
var LineNormalizers = []NormalizeFunc{
	NFC,
	Lowercase,
	CanonicalizeCopyrightSign,
	RemoveJunk,
	BlackboxURLs,
	FlattenWhitespace,
	NormalizePunctuation,
	TrimLine,
}

// NormalizeLine applies the per-line pipeline to a single line.
func NormalizeLine(line string) string {
	for _, fn := range LineNormalizers {
		line = fn(line)
	}
	return line
}

// isHighVariance reports whether a normalized line matches one of the
// patterns that vary per project without affecting license identity: a
// copyright statement (leading "copyright", or a year/year-range followed by
// an entity name) or a short license-title line.
func isHighVariance(line string) bool {
	if line == "" {
		return false
	}
	return copyrightRegexp.MatchString(line) ||
		yearEntityRegexp.MatchString(line) ||
		titleRegexp.MatchString(line)
}

// Normalize converts raw text into its canonical line-based form. The result
// has exactly one element per input line; blank and high-variance lines are
// preserved as empty-string markers.
func Normalize(text string) []string {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = NormalizeLine(line)
	}
	for i, line := range lines {
		if isHighVariance(line) {
			lines[i] = ""
		}
	}
	return lines
}

// NormalizeAsText is Normalize with the lines rejoined by newlines. Feeding
// its output back through Normalize reproduces the same lines.
func NormalizeAsText(text string) string {
	return strings.Join(Normalize(text), "\n")
}
