// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns article identifiers into partial metadata records by
// querying external bibliographic registries: Crossref for DOIs and PubMed
// E-utilities for PMIDs.
//
// A registry that cannot answer (transport error, non-200 status, malformed
// body) is treated as unavailable: Resolve logs the failure and returns an
// empty record. Resolvers never retry.
package resolve

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paperclip/pkg/types"
)

// Source names reported in logs, metrics, and Result.Sources.
const (
	SourceCrossref = "crossref"
	SourcePubMed   = "pubmed"
)

// maxResponseBytes caps how much of a registry response is read.
const maxResponseBytes = 10 << 20

// Resolver looks up one identifier in an external registry.
type Resolver interface {
	// Name identifies the registry (e.g. "crossref").
	Name() string

	// Resolve returns whatever fields the registry supplies for id. It never
	// fails; an unavailable registry yields an empty record.
	Resolve(ctx context.Context, id string) types.PartialRecord
}

// unavailable logs a failed lookup and returns the empty record.
func unavailable(logger zerolog.Logger, source, id string, err error) types.PartialRecord {
	logger.Warn().Str("source", source).Str("id", id).Err(err).Msg("registry lookup failed")
	return types.PartialRecord{}
}
