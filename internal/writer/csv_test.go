package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

func sampleResult() *models.ParseResult {
	date := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
	return &models.ParseResult{
		Source:       models.SourcePhonePe,
		LineCount:    6,
		MatchedCount: 3,
		Transactions: []models.Transaction{
			{Date: date, Merchant: "Swiggy", Amount: decimal.RequireFromString("350"), Direction: models.Debit, Category: models.CategoryFood, RawText: "Paid to Swiggy ₹350"},
			{Date: date, Merchant: "Ramesh, Kumar", Amount: decimal.RequireFromString("1500.5"), Direction: models.Credit, Category: models.CategoryOther, RawText: "Received from Ramesh, Kumar ₹1,500.50"},
			{Date: date.AddDate(0, 0, 1), Merchant: "Uber", Amount: decimal.RequireFromString("245"), Direction: models.Debit, Category: models.CategoryTransport, RawText: "Paid to Uber Rs.245"},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	require.NoError(t, w.Write(&buf, sampleResult()))

	output := buf.String()
	assert.Contains(t, output, "# Source,phonepe")
	assert.Contains(t, output, "# Transactions,3")
	assert.Contains(t, output, "Date,Merchant,Type,Amount,Category,RawText")
	assert.Contains(t, output, "2026-02-20,Swiggy,DEBIT,350.00,food,Paid to Swiggy ₹350")
	assert.Contains(t, output, `2026-02-20,"Ramesh, Kumar",CREDIT,1500.50,other,`)
	assert.Contains(t, output, "2026-02-21,Uber,DEBIT,245.00,transport")

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 3 metadata lines + 1 header + 3 transactions
	assert.Len(t, lines, 7)
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: false}
	require.NoError(t, w.Write(&buf, sampleResult()))

	output := buf.String()
	assert.NotContains(t, output, "# Source")
	assert.True(t, strings.HasPrefix(output, "Date,Merchant,Type,Amount,Category,RawText"))
}

func TestCSVWriter_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	res := &models.ParseResult{Source: models.SourcePhonePe, Transactions: []models.Transaction{}}
	require.NoError(t, w.Write(&buf, res))

	assert.Equal(t, "Date,Merchant,Type,Amount,Category,RawText", strings.TrimSpace(buf.String()))
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{}
	require.NoError(t, w.WriteToFile(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Swiggy")

	err = w.WriteToFile(filepath.Join(t.TempDir(), "missing", "out.csv"), sampleResult())
	assert.Error(t, err)
}
