// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything outside the slug alphabet: ASCII
	// letters/digits, the Spanish accented vowels, ñ, whitespace, hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9áéíóúñ\s-]`)
	// whitespaceRun collapses whitespace runs into a single hyphen.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "¡Hola, Mundo! 2026" → "hola-mundo-2026"
//
// Generate is total and idempotent: degenerate input yields the literal
// fallback "post", and Generate(Generate(s)) == Generate(s).
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = disallowed.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, "ñ", "n")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if result == "" {
		return "post"
	}
	return result
}
