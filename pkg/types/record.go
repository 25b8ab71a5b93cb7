// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperclip pipeline:
// identifiers detected on a page, partial and merged metadata records, and
// the submission payload handed to the library service.
package types

import "strings"

// Field names one bibliographic field of a record.
type Field string

const (
	FieldTitle    Field = "title"
	FieldAuthors  Field = "authors"
	FieldAbstract Field = "abstract"
)

// AllFields lists the record fields in display order.
var AllFields = []Field{FieldTitle, FieldAuthors, FieldAbstract}

// Identifiers holds the standard identifiers found on a page. Either, both,
// or neither may be set.
type Identifiers struct {
	// DOI is the digital object identifier (e.g. "10.1038/s41586-024-07487-w").
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PMID is the PubMed identifier (e.g. "31452104").
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`
}

// IsEmpty reports whether no identifier was found.
func (ids Identifiers) IsEmpty() bool {
	return ids.DOI == "" && ids.PMID == ""
}

// PartialRecord is the output of a single metadata source. Empty fields mean
// the source could not supply them.
type PartialRecord struct {
	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the article abstract with markup removed.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// Has reports whether field f is non-empty.
func (r PartialRecord) Has(f Field) bool {
	switch f {
	case FieldTitle:
		return r.Title != ""
	case FieldAuthors:
		return len(r.Authors) > 0
	case FieldAbstract:
		return r.Abstract != ""
	default:
		return false
	}
}

// Missing returns the empty fields in display order.
func (r PartialRecord) Missing() []Field {
	var missing []Field
	for _, f := range AllFields {
		if !r.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every field is set.
func (r PartialRecord) Complete() bool {
	return len(r.Missing()) == 0
}

// IsEmpty reports whether every field is empty.
func (r PartialRecord) IsEmpty() bool {
	return len(r.Missing()) == len(AllFields)
}

// AuthorsDisplay joins the authors into the comma-separated string shown in
// the form.
func (r PartialRecord) AuthorsDisplay() string {
	return strings.Join(r.Authors, ", ")
}

// Record is the merged result of a pipeline run. It has the same shape as
// PartialRecord; a field set by a higher-priority source is never replaced.
type Record = PartialRecord

// Completeness classifies a merged record.
type Completeness string

const (
	Complete Completeness = "complete"
	Partial  Completeness = "partial"
	Failed   Completeness = "failed"
)

// AuthorEntry is one author in the submission payload. Label and Value both
// hold the trimmed display name.
type AuthorEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Submission holds the final, user-edited field values sent to the library.
type Submission struct {
	Title          string        `json:"title"`
	Abstract       string        `json:"abstract"`
	Authors        []AuthorEntry `json:"authors"`
	ArticleLink    string        `json:"article_link"`
	SubmissionType string        `json:"submission_type"`
	CommunityName  string        `json:"community_name"`
}
