// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo derives presentation metadata from raw post content and
// gates the transition to published status behind publish-readiness
// checks. All functions are pure.
package seo

import (
	"math"
	"regexp"
	"strings"
)

// wordsPerMinute is the reading speed assumed for read-time estimates.
const wordsPerMinute = 220

// excerptLimit is the maximum excerpt length; longer stripped text is cut
// at excerptCut characters and suffixed with an ellipsis marker.
const (
	excerptLimit = 160
	excerptCut   = 157
)

// tagMarkup matches HTML tag markup for stripping. This is a
// non-validating pass used for word counting and default excerpts only,
// never for rendering.
var tagMarkup = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes tag markup from an HTML fragment.
func StripHTML(s string) string {
	return tagMarkup.ReplaceAllString(s, "")
}

// ReadingTime estimates the reading time of an HTML body in minutes at
// 220 words per minute, rounded to the nearest minute and never below 1.
func ReadingTime(content string) int {
	words := len(strings.Fields(StripHTML(content)))
	if words < 1 {
		words = 1
	}
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Excerpt produces a default excerpt from an HTML body: the stripped text
// verbatim when it fits in 160 characters, otherwise the first 157
// characters plus "...".
func Excerpt(content string) string {
	text := strings.TrimSpace(StripHTML(content))
	runes := []rune(text)
	if len(runes) > excerptLimit {
		return string(runes[:excerptCut]) + "..."
	}
	return text
}
