// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperclip/pkg/types"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(NewLoggerTo(&buf, types.LogConfig{Level: "info", Format: "json"}), "resolver")

	logger.Debug().Msg("hidden")
	logger.Warn().Str("source", "crossref").Msg("lookup failed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "resolver", entry["component"])
	assert.Equal(t, "crossref", entry["source"])
	assert.Equal(t, "lookup failed", entry["message"])
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveSource("crossref", OutcomeFilled)
	m.ObserveSource("crossref", OutcomeFilled)
	m.ObserveSource("pubmed", OutcomeSkipped)
	m.ObserveExtraction("partial", 150*time.Millisecond)
	m.ObserveSubmission("ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SourceLookups.WithLabelValues("crossref", OutcomeFilled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SourceLookups.WithLabelValues("pubmed", OutcomeSkipped)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("ok")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSource("crossref", OutcomeEmpty)
		m.ObserveExtraction("failed", time.Second)
		m.ObserveSubmission("error")
	})
}
