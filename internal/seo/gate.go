// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"fmt"
	"regexp"
	"strings"
)

// Payload is the candidate field set checked for publish readiness.
type Payload struct {
	Title            string
	Content          string
	MetaTitle        string
	MetaDescription  string
	FeaturedImageAlt string
}

// HeadingsLabel is the missing-requirement label reported when the content
// lacks an H1 or H2 heading.
const HeadingsLabel = "headings(H1/H2)"

var (
	h1Marker = regexp.MustCompile(`(?i)<h1[\s>]`)
	h2Marker = regexp.MustCompile(`(?i)<h2[\s>]`)
)

// Check validates a payload against the publish requirements and returns
// the ordered list of missing-requirement labels. An empty result means
// the payload is ready to publish. Every requirement is checked
// independently; there is no short-circuiting.
func Check(p Payload) []string {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(p.MetaTitle) == "" {
		missing = append(missing, "meta_title")
	}
	if strings.TrimSpace(p.MetaDescription) == "" {
		missing = append(missing, "meta_description")
	}
	if strings.TrimSpace(p.FeaturedImageAlt) == "" {
		missing = append(missing, "featured_image_alt")
	}
	if !hasHeadings(p.Content) {
		missing = append(missing, HeadingsLabel)
	}
	return missing
}

// hasHeadings reports whether the body contains at least one H1 and one
// H2 heading marker. Case-insensitive structural check, not a parse.
func hasHeadings(content string) bool {
	return h1Marker.MatchString(content) && h2Marker.MatchString(content)
}

// ValidationError is returned when a save targeting published status
// fails the readiness gate. It carries the missing-requirement labels and
// guarantees that no mutation was performed.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("post is not ready to publish, missing: %s", strings.Join(e.Missing, ", "))
}
