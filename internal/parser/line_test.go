package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/upi-statement-parser/internal/category"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

func newTestLineParser(t *testing.T) *LineParser {
	t.Helper()
	c, err := category.NewDefaultClassifier()
	require.NoError(t, err)
	return NewLineParser(c)
}

func TestParseLine_DateAndAmountOnSameLine(t *testing.T) {
	lp := newTestLineParser(t)
	ctx := &ParseContext{}

	txn, ok := lp.ParseLine("Feb 20, 2026 Paid to Zomato ₹1,250.50", ctx)
	require.True(t, ok)
	assert.True(t, day(2026, time.February, 20).Equal(txn.Date))
	assert.Equal(t, "Zomato", txn.Merchant)
	assert.Equal(t, "1250.50", txn.Amount.StringFixed(2))
	assert.Equal(t, models.Debit, txn.Direction)
	assert.Equal(t, models.CategoryFood, txn.Category)
	assert.Equal(t, "Feb 20, 2026 Paid to Zomato ₹1,250.50", txn.RawText)
}

func TestParseLine_DateOnlyUpdatesContext(t *testing.T) {
	lp := newTestLineParser(t)
	ctx := &ParseContext{}

	txn, ok := lp.ParseLine("Feb 20, 2026", ctx)
	assert.False(t, ok)
	assert.Nil(t, txn)
	require.NotNil(t, ctx.CurrentDate)
	assert.True(t, day(2026, time.February, 20).Equal(*ctx.CurrentDate))
}

func TestParseLine_AmountWithoutDateIsDropped(t *testing.T) {
	lp := newTestLineParser(t)
	ctx := &ParseContext{}

	txn, ok := lp.ParseLine("Paid to Swiggy ₹350", ctx)
	assert.False(t, ok)
	assert.Nil(t, txn)
	assert.Nil(t, ctx.CurrentDate)
}

func TestParseLine_CarriedDate(t *testing.T) {
	lp := newTestLineParser(t)
	feb20 := day(2026, time.February, 20)
	ctx := &ParseContext{CurrentDate: &feb20}

	txn, ok := lp.ParseLine("Paid to Uber ₹220", ctx)
	require.True(t, ok)
	assert.True(t, feb20.Equal(txn.Date))
	assert.Equal(t, models.CategoryTransport, txn.Category)
}

func TestParseLine_InvalidDateKeepsContext(t *testing.T) {
	lp := newTestLineParser(t)
	feb20 := day(2026, time.February, 20)
	ctx := &ParseContext{CurrentDate: &feb20}

	txn, ok := lp.ParseLine("Feb 30, 2026 Paid to Uber ₹220", ctx)
	require.True(t, ok)
	assert.True(t, feb20.Equal(txn.Date))
	assert.True(t, feb20.Equal(*ctx.CurrentDate))
}

func TestParseLine_LaterDateOverwritesContext(t *testing.T) {
	lp := newTestLineParser(t)
	mar1 := day(2026, time.March, 1)
	ctx := &ParseContext{CurrentDate: &mar1}

	_, ok := lp.ParseLine("Feb 20, 2026", ctx)
	assert.False(t, ok)
	assert.True(t, day(2026, time.February, 20).Equal(*ctx.CurrentDate))
}

func TestParseLine_ImplausibleAmountsOnly(t *testing.T) {
	lp := newTestLineParser(t)
	ctx := &ParseContext{}

	txn, ok := lp.ParseLine("Feb 20, 2026 Paid to Someone ₹2,000,000", ctx)
	assert.False(t, ok)
	assert.Nil(t, txn)
	require.NotNil(t, ctx.CurrentDate, "date update still applies")
}

func TestParseLine_CreditLine(t *testing.T) {
	lp := newTestLineParser(t)
	ctx := &ParseContext{}

	txn, ok := lp.ParseLine("Feb 20, 2026 Received from Ramesh ₹500 credit", ctx)
	require.True(t, ok)
	assert.Equal(t, models.Credit, txn.Direction)
	assert.Equal(t, "500.00", txn.Amount.StringFixed(2))
	assert.Equal(t, "Ramesh", txn.Merchant)
}

func TestParseLine_DebugOutcome(t *testing.T) {
	lp := newTestLineParser(t)

	tests := []struct {
		line   string
		result string
	}{
		{"Transaction Statement", models.LineNoAmount},
		{"Paid to Swiggy ₹350", models.LineNoDate},
		{"Feb 20, 2026", models.LineDateOnly},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ctx := &ParseContext{LineIndex: 7}
			_, dbg := lp.parseLine(tt.line, ctx)
			assert.Equal(t, tt.result, dbg.Result)
			assert.Equal(t, 7, dbg.LineNum)
		})
	}
}
