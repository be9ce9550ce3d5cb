// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tags normalizes the free-form tag field submitted with a snippet.
//
// # Format
//
// Tags are separated by whitespace. Each tag is Unicode-normalized (NFKC),
// lower-cased, and de-duplicated while preserving first-seen order. Commas are
// not separators: "go,sql" is the single tag "go,sql".
package tags

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxTagLength is the longest single tag kept after normalization.
const MaxTagLength = 50

var lower = cases.Lower(language.Und)

// Parse splits raw on whitespace and returns the normalized tag list.
//
// An empty or whitespace-only input yields an empty, non-nil slice.
func Parse(raw string) []string {
	fields := strings.Fields(raw)
	result := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		tag := Normalize(field)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}

	return result
}

// Normalize canonicalizes a single tag the same way [Parse] does, so that a
// tag taken from a URL path matches the stored form.
func Normalize(tag string) string {
	tag = norm.NFKC.String(strings.TrimSpace(tag))
	tag = lower.String(tag)

	runes := []rune(tag)
	if len(runes) > MaxTagLength {
		tag = string(runes[:MaxTagLength])
	}

	return tag
}

// Join renders tags back into the whitespace-separated form used by forms.
func Join(tags []string) string {
	return strings.Join(tags, " ")
}
