package observability

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/obrok/lens"
	lenserr "github.com/obrok/lens/errors"
	"github.com/obrok/lens/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentRecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics("test", registry)
	items := Instrument(lens.Seq(lens.Key("items"), lens.All()), "items", WithMetrics(metrics))

	_, err := lens.ToList(items, map[string]any{"items": []any{1, 2, 3}})
	require.NoError(t, err)
	_, err = lens.ToList(items, map[string]any{"items": []any{4}})
	require.NoError(t, err)
	_, err = lens.ToList(items, []any{})
	require.ErrorIs(t, err, lenserr.ErrInvalidShape)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.EvaluationsTotal().WithLabelValues("items", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.EvaluationsTotal().WithLabelValues("items", "error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.FociTotal().WithLabelValues("items")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ErrorsTotal().WithLabelValues("items", "INVALID_SHAPE")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.Duration()))
}

func TestRecordEvaluationOutcomes(t *testing.T) {
	metrics := NewMetrics("test", prometheus.NewRegistry())

	metrics.RecordEvaluation("strict", 0, lenserr.KeyNotFound("id"), 0)
	metrics.RecordEvaluation("strict", 0, fmt.Errorf("row 3: %w", lenserr.IndexOutOfRange(5, 2)), 0)
	metrics.RecordEvaluation("strict", 0, lenserr.InvalidShape("key", 1), 0)
	metrics.RecordEvaluation("strict", 0, errors.New("foreign"), 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.EvaluationsTotal().WithLabelValues("strict", "missing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.EvaluationsTotal().WithLabelValues("strict", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ErrorsTotal().WithLabelValues("strict", "KEY_NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ErrorsTotal().WithLabelValues("strict", "INDEX_OUT_OF_RANGE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ErrorsTotal().WithLabelValues("strict", "INVALID_SHAPE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ErrorsTotal().WithLabelValues("strict", "INVALID_ARGUMENT")))
}

func TestInstrumentKeepsSemantics(t *testing.T) {
	data := []any{1, 2, 3}
	plain := lens.Seq(lens.All(), lens.Filter(func(v any) bool { return v.(int) > 1 }))
	wrapped := Instrument(plain, "gt1")

	want, err := lens.Map(plain, data, func(v any) any { return v.(int) * 2 })
	require.NoError(t, err)
	got, err := lens.Map(wrapped, data, func(v any) any { return v.(int) * 2 })
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "gt1", wrapped.(interface{ String() string }).String())
}

func TestInstrumentLogs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: logging.LevelDebug, Format: logging.FormatText, Output: &buf})
	require.NoError(t, err)

	name := Instrument(lens.KeyStrict("name"), "name", WithLogger(logger))
	_, err = lens.ToList(name, map[string]any{"name": "ada"})
	require.NoError(t, err)
	_, err = lens.ToList(name, map[string]any{})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="lens evaluated" lens=name foci=1`)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "KEY_NOT_FOUND")
}

func TestNewMetricsWithoutRegistry(t *testing.T) {
	metrics := NewMetrics("", nil)
	metrics.RecordEvaluation("x", 2, nil, 0)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.FociTotal().WithLabelValues("x")))
}
