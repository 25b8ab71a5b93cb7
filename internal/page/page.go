// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page gives the pipeline read-only access to an article page: its
// metadata descriptors (<meta> tags) and selector-based text lookups against
// the rendered structure. Document serves static HTML; Tab serves a live
// browser page.
package page

import (
	"context"
	"strings"
)

// Descriptor is one named metadata value on the page, typically a
// <meta name="..." content="..."> or <meta property="..." content="..."> tag.
type Descriptor struct {
	// Attr is the attribute that carried the key: "name" or "property".
	Attr string `json:"attr"`

	// Key is the descriptor name (e.g. "citation_doi", "og:title").
	Key string `json:"key"`

	// Content is the descriptor value.
	Content string `json:"content"`
}

// Accessor is the capability the pipeline uses to inspect a page.
type Accessor interface {
	// Descriptors returns every metadata descriptor in document order.
	Descriptors(ctx context.Context) ([]Descriptor, error)

	// Text returns the rendered text of the first element matching selector.
	// The bool result is false when nothing matches.
	Text(ctx context.Context, selector string) (string, bool, error)
}

// Key addresses a descriptor by attribute and name. Matching is
// case-insensitive on both.
type Key struct {
	Attr string
	Name string
}

// Name is shorthand for a name-attribute key.
func Name(name string) Key { return Key{Attr: "name", Name: name} }

// Property is shorthand for a property-attribute key.
func Property(name string) Key { return Key{Attr: "property", Name: name} }

// Matches reports whether d is addressed by k.
func (k Key) Matches(d Descriptor) bool {
	return strings.EqualFold(d.Attr, k.Attr) && strings.EqualFold(d.Key, k.Name)
}

// First returns the content of the first descriptor matching k whose trimmed
// content is non-empty.
func First(descs []Descriptor, k Key) (string, bool) {
	for _, d := range descs {
		if k.Matches(d) {
			if v := strings.TrimSpace(d.Content); v != "" {
				return d.Content, true
			}
		}
	}
	return "", false
}

// All returns the non-empty contents of every descriptor matching any of
// keys, in document order.
func All(descs []Descriptor, keys ...Key) []string {
	var out []string
	for _, d := range descs {
		for _, k := range keys {
			if k.Matches(d) && strings.TrimSpace(d.Content) != "" {
				out = append(out, d.Content)
				break
			}
		}
	}
	return out
}
