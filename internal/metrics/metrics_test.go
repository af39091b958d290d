package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

func TestObserveParse(t *testing.T) {
	m := New()

	m.ObserveParse(&models.ParseResult{
		LineCount: 12,
		Transactions: []models.Transaction{
			{Amount: decimal.NewFromInt(350), Direction: models.Debit, Category: models.CategoryFood},
			{Amount: decimal.NewFromInt(90), Direction: models.Debit, Category: models.CategoryFood},
			{Amount: decimal.NewFromInt(500), Direction: models.Credit, Category: models.CategoryOther},
		},
	})
	m.ObserveParse(&models.ParseResult{LineCount: 3, Transactions: []models.Transaction{}})

	assert.Equal(t, 15.0, testutil.ToFloat64(m.lines))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.transactions.WithLabelValues("food", "DEBIT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactions.WithLabelValues("other", "CREDIT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statements.WithLabelValues(OutcomeParsed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statements.WithLabelValues(OutcomeEmpty)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveParse(&models.ParseResult{LineCount: 1})
		m.ObserveOutcome(OutcomeRejected)
		m.ObserveExtract(time.Second)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveExtract(20 * time.Millisecond)
	m.ObserveOutcome(OutcomeExtractFailed)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "upi_extract_duration_seconds_count 1")
	assert.Contains(t, string(body), `upi_parser_statements_total{outcome="extract_failed"} 1`)
}
