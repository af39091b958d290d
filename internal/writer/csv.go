// Package writer exports parsed transactions to CSV and XLSX files.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// DateLayout is the date format used in every export.
const DateLayout = "2006-01-02"

// csvRow is one exported transaction. Column order follows field order.
type csvRow struct {
	Date     string `csv:"Date"`
	Merchant string `csv:"Merchant"`
	Type     string `csv:"Type"`
	Amount   string `csv:"Amount"`
	Category string `csv:"Category"`
	RawText  string `csv:"RawText"`
}

func toCSVRows(txns []models.Transaction) []*csvRow {
	rows := make([]*csvRow, 0, len(txns))
	for _, txn := range txns {
		rows = append(rows, &csvRow{
			Date:     txn.Date.Format(DateLayout),
			Merchant: txn.Merchant,
			Type:     string(txn.Direction),
			Amount:   formatAmount(txn),
			Category: string(txn.Category),
			RawText:  txn.RawText,
		})
	}
	return rows
}

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	// IncludeHeader adds "# key,value" metadata rows before the column header.
	IncludeHeader bool
}

// WriteToFile writes the parse result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, res *models.ParseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, res)
}

// Write writes the parse result in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, res *models.ParseResult) error {
	if w.IncludeHeader {
		meta := csv.NewWriter(out)
		_ = meta.Write([]string{"# Source", string(res.Source)})
		_ = meta.Write([]string{"# Lines Scanned", strconv.Itoa(res.LineCount)})
		_ = meta.Write([]string{"# Transactions", strconv.Itoa(res.MatchedCount)})
		meta.Flush()
		if err := meta.Error(); err != nil {
			return fmt.Errorf("failed to write CSV metadata: %w", err)
		}
	}

	// gocsv writes the column header even for an empty slice.
	if err := gocsv.Marshal(toCSVRows(res.Transactions), out); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

func formatAmount(txn models.Transaction) string {
	return txn.Amount.StringFixed(2)
}
