// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paperclip/pkg/types"
)

var mergeSamples = []types.PartialRecord{
	{},
	{Title: "A title"},
	{Authors: []string{"A One"}},
	{Abstract: "A abstract"},
	{Title: "A title", Authors: []string{"A One", "A Two"}, Abstract: "A abstract"},
	{Title: "B title", Abstract: "B abstract"},
	{Authors: []string{"B One"}},
}

func TestMerge_PriorityLaw(t *testing.T) {
	for _, a := range mergeSamples {
		for _, b := range mergeSamples {
			got := Merge(a, b)

			want := b
			if a.Title != "" {
				want.Title = a.Title
			}
			if len(a.Authors) > 0 {
				want.Authors = a.Authors
			}
			if a.Abstract != "" {
				want.Abstract = a.Abstract
			}
			assert.Equal(t, want.Title, got.Title)
			assert.Equal(t, want.Abstract, got.Abstract)
			assert.Equal(t, len(want.Authors), len(got.Authors))
			assert.Equal(t, want.AuthorsDisplay(), got.AuthorsDisplay())
		}
	}
}

func TestMerge_EmptyIsIdentity(t *testing.T) {
	for _, a := range mergeSamples {
		assert.Equal(t, a.Title, Merge(a, types.PartialRecord{}).Title)
		assert.Equal(t, a.Abstract, Merge(a, types.PartialRecord{}).Abstract)
		assert.Equal(t, a.AuthorsDisplay(), Merge(a, types.PartialRecord{}).AuthorsDisplay())
		assert.Equal(t, a.AuthorsDisplay(), Merge(types.PartialRecord{}, a).AuthorsDisplay())
	}
}

func TestMerge_DoesNotAliasAuthors(t *testing.T) {
	src := types.PartialRecord{Authors: []string{"A One"}}
	got := Merge(src)
	got.Authors[0] = "changed"
	assert.Equal(t, "A One", src.Authors[0])
}

func TestMerge_ThreeSources(t *testing.T) {
	got := Merge(
		types.PartialRecord{Title: "T"},
		types.PartialRecord{Title: "ignored", Authors: []string{"B"}},
		types.PartialRecord{Authors: []string{"ignored"}, Abstract: "S"},
	)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, []string{"B"}, got.Authors)
	assert.Equal(t, "S", got.Abstract)
}

func TestMergeSources(t *testing.T) {
	_, sources := mergeSources(
		[]types.PartialRecord{{Title: "T"}, {Title: "x", Abstract: "B"}, {Authors: []string{"S"}}},
		[]string{"crossref", "pubmed", "scraper"},
	)
	assert.Equal(t, map[types.Field]string{
		types.FieldTitle:    "crossref",
		types.FieldAbstract: "pubmed",
		types.FieldAuthors:  "scraper",
	}, sources)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, types.Failed, Classify(types.Record{}))
	assert.Equal(t, types.Failed, Classify(types.Record{Authors: []string{}}))
	assert.Equal(t, types.Partial, Classify(types.Record{Title: "T"}))
	assert.Equal(t, types.Partial, Classify(types.Record{Title: "T", Abstract: "A"}))
	assert.Equal(t, types.Complete, Classify(types.Record{Title: "T", Authors: []string{"A"}, Abstract: "X"}))
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, StatusComplete, StatusMessage(Result{Completeness: types.Complete}))
	assert.Equal(t, StatusPartial, StatusMessage(Result{Completeness: types.Partial}))
	assert.Equal(t, StatusFailed, StatusMessage(Result{Completeness: types.Failed}))
	assert.Equal(t, StatusFatal, StatusMessage(Result{Completeness: types.Failed, Fatal: true}))
	assert.Equal(t, "No metadata found. Please fill manually.", StatusFailed)
}
