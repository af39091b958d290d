package writer

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

const (
	transactionsSheet = "Transactions"
	summarySheet      = "Summary"
)

var transactionHeaders = []string{"Date", "Merchant", "Type", "Amount", "Category", "RawText"}

// XLSXWriter writes a workbook with a Transactions sheet and a Summary sheet.
type XLSXWriter struct{}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, res *models.ParseResult) error {
	f, err := w.build(res)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write streams the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, res *models.ParseResult) error {
	f, err := w.build(res)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(res *models.ParseResult) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename the default sheet rather than leaving an empty Sheet1 behind.
	if err := f.SetSheetName(f.GetSheetName(0), transactionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	if err := writeTransactions(f, res.Transactions); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, models.Summarize(res.Transactions)); err != nil {
		f.Close()
		return nil, err
	}

	idx, err := f.GetSheetIndex(transactionsSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	return f, nil
}

type colWidth struct {
	from, to string
	width    float64
}

func writeTransactions(f *excelize.File, txns []models.Transaction) error {
	rows := make([][]any, 0, len(txns)+1)
	header := make([]any, len(transactionHeaders))
	for i, h := range transactionHeaders {
		header[i] = h
	}
	rows = append(rows, header)
	for _, txn := range txns {
		rows = append(rows, []any{
			txn.Date.Format(DateLayout),
			txn.Merchant,
			string(txn.Direction),
			txn.Amount.InexactFloat64(),
			string(txn.Category),
			txn.RawText,
		})
	}

	if err := writeRows(f, transactionsSheet, rows); err != nil {
		return err
	}
	return setColWidths(f, transactionsSheet, []colWidth{
		{"A", "A", 12}, // date
		{"B", "B", 32}, // merchant
		{"C", "D", 12},
		{"E", "E", 16},
		{"F", "F", 60}, // raw text
	})
}

func writeSummary(f *excelize.File, s models.Summary) error {
	rows := [][]any{
		{"Total Debit", FormatINR(s.TotalDebit)},
		{"Total Credit", FormatINR(s.TotalCredit)},
		{"Net", FormatINR(s.Net)},
		{"Category", "Spent", "Transactions"},
	}
	for _, ct := range s.ByCategory {
		rows = append(rows, []any{string(ct.Category), FormatINR(ct.Total), ct.Count})
	}

	if err := writeRows(f, summarySheet, rows); err != nil {
		return err
	}
	return setColWidths(f, summarySheet, []colWidth{
		{"A", "A", 16},
		{"B", "C", 16},
	})
}

// writeRows fills sheet from A1 and stops at the first failing cell.
func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("xlsx cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func setColWidths(f *excelize.File, sheet string, widths []colWidth) error {
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("xlsx %s column width: %w", sheet, err)
		}
	}
	return nil
}

// FormatINR renders an amount in rupees, e.g. ₹1,250.50.
func FormatINR(amount decimal.Decimal) string {
	paise := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return money.New(paise, money.INR).Display()
}
