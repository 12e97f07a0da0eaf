// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance decides whether a resolved work is in scope for the
// crawl, by case-insensitive keyword matching over its text fields.
// Implements: prd001-crawler (R2);
//
//	docs/ARCHITECTURE § Relevance Filter.
package relevance

import (
	"fmt"
	"strings"

	"github.com/stefanshakeri/Recursive-Web-Search/pkg/types"
)

// Filter holds the configured keyword terms, lowercased once at
// construction. Matching is a pure function of the work's text fields.
type Filter struct {
	keywords []string
}

// New builds a Filter from the configured terms. Blank terms are dropped;
// an effectively empty set is a configuration error because it would reject
// every work and the crawl could never leave the seed.
func New(keywords []string) (*Filter, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("relevance filter needs at least one keyword")
	}
	return &Filter{keywords: cleaned}, nil
}

// Keywords returns the normalized terms in configuration order.
func (f *Filter) Keywords() []string {
	return f.keywords
}

// Match reports whether any keyword occurs in the work's title, abstract,
// or subject tags (substring, case-insensitive). A work with no text in any
// of those fields never matches.
func (f *Filter) Match(w *types.Work) bool {
	var b strings.Builder
	b.WriteString(w.Title)
	b.WriteString(" ")
	b.WriteString(w.Abstract)
	for _, s := range w.Subjects {
		b.WriteString(" ")
		b.WriteString(s)
	}
	text := strings.ToLower(b.String())

	for _, kw := range f.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
