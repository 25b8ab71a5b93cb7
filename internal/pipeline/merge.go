// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import "github.com/pdiddy/paperclip/pkg/types"

// User-facing status messages.
const (
	StatusComplete = "Metadata detected."
	StatusPartial  = "Some fields detected. Please review and fill the rest."
	StatusFailed   = "No metadata found. Please fill manually."
	StatusFatal    = "Auto-detection failed."
)

// Merge combines records field by field, taking the first non-empty value in
// argument order. Earlier arguments have higher priority.
func Merge(records ...types.PartialRecord) types.Record {
	rec, _ := mergeSources(records, nil)
	return rec
}

// mergeSources merges records and, when names is non-nil, reports which
// name supplied each field. names[i] labels records[i].
func mergeSources(records []types.PartialRecord, names []string) (types.Record, map[types.Field]string) {
	var out types.Record
	sources := make(map[types.Field]string)
	for i, r := range records {
		for _, f := range types.AllFields {
			if out.Has(f) || !r.Has(f) {
				continue
			}
			switch f {
			case types.FieldTitle:
				out.Title = r.Title
			case types.FieldAuthors:
				out.Authors = append([]string(nil), r.Authors...)
			case types.FieldAbstract:
				out.Abstract = r.Abstract
			}
			if i < len(names) {
				sources[f] = names[i]
			}
		}
	}
	return out, sources
}

// Classify reports whether rec is complete, partial, or failed.
func Classify(rec types.Record) types.Completeness {
	switch len(rec.Missing()) {
	case 0:
		return types.Complete
	case len(types.AllFields):
		return types.Failed
	default:
		return types.Partial
	}
}

// StatusMessage returns the status line shown to the user for r.
func StatusMessage(r Result) string {
	if r.Fatal {
		return StatusFatal
	}
	switch r.Completeness {
	case types.Complete:
		return StatusComplete
	case types.Partial:
		return StatusPartial
	default:
		return StatusFailed
	}
}
