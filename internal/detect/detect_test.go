// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paperclip/internal/page"
	"github.com/pdiddy/paperclip/pkg/types"
)

func name(k, v string) page.Descriptor { return page.Descriptor{Attr: "name", Key: k, Content: v} }
func prop(k, v string) page.Descriptor { return page.Descriptor{Attr: "property", Key: k, Content: v} }

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		descs []page.Descriptor
		want  types.Identifiers
	}{
		{"none", nil, types.Identifiers{}},
		{"citation doi", []page.Descriptor{name("citation_doi", "10.1/xyz")}, types.Identifiers{DOI: "10.1/xyz"}},
		{
			"citation doi outranks dublin core",
			[]page.Descriptor{name("dc.identifier", "10.2/dc"), name("citation_doi", "10.1/cit")},
			types.Identifiers{DOI: "10.1/cit"},
		},
		{"dublin core mixed case", []page.Descriptor{name("DC.Identifier", "doi:10.2/dc")}, types.Identifiers{DOI: "10.2/dc"}},
		{"property encoding", []page.Descriptor{prop("citation_doi", " 10.3/p ")}, types.Identifiers{DOI: "10.3/p"}},
		{
			"both identifiers",
			[]page.Descriptor{name("citation_doi", "10.1/xyz"), name("citation_pmid", "31452104")},
			types.Identifiers{DOI: "10.1/xyz", PMID: "31452104"},
		},
		{"ncbi fallback", []page.Descriptor{name("ncbi_pmid", " 123 ")}, types.Identifiers{PMID: "123"}},
		{
			"citation pmid outranks ncbi",
			[]page.Descriptor{name("ncbi_pmid", "1"), name("citation_pmid", "2")},
			types.Identifiers{PMID: "2"},
		},
		{"blank doi ignored", []page.Descriptor{name("citation_doi", "  "), name("dc.identifier", "10.4/x")}, types.Identifiers{DOI: "10.4/x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.descs))
		})
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct{ in, want string }{
		{"10.1/xyz", "10.1/xyz"},
		{"  10.1/xyz\n", "10.1/xyz"},
		{"doi:10.1/xyz", "10.1/xyz"},
		{"DOI: 10.1/xyz", "10.1/xyz"},
		{"https://doi.org/10.1/xyz", "10.1/xyz"},
		{"http://dx.doi.org/10.1/XYZ", "10.1/XYZ"},
		{"not-a-doi", "not-a-doi"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDOI(tt.in), tt.in)
	}
}
