package parser

import (
	"strings"
	"time"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Classifier assigns a taxonomy category to a merchant name.
type Classifier interface {
	Classify(merchant string) models.Category
}

// ParseContext is the state carried from one line to the next while
// scanning a single statement.
type ParseContext struct {
	// CurrentDate is the most recent date seen. PhonePe prints the date once
	// per transaction block, with the amount on a following line.
	CurrentDate *time.Time
	// LineIndex is the 1-based number of the line being parsed.
	LineIndex int
}

// LineParser turns one statement line into at most one transaction.
type LineParser struct {
	classifier Classifier
}

// NewLineParser returns a LineParser that categorizes merchants with c.
func NewLineParser(c Classifier) *LineParser {
	return &LineParser{classifier: c}
}

// ParseLine extracts a transaction from line. Whenever the line carries a
// valid date, ctx.CurrentDate is overwritten with it, whether or not a
// transaction is returned.
func (lp *LineParser) ParseLine(line string, ctx *ParseContext) (*models.Transaction, bool) {
	txn, _ := lp.parseLine(line, ctx)
	return txn, txn != nil
}

// parseLine also reports how the line was handled, for debug output.
func (lp *LineParser) parseLine(line string, ctx *ParseContext) (*models.Transaction, models.DebugLine) {
	dbg := models.DebugLine{LineNum: ctx.LineIndex, Text: truncate(line, models.MaxRawTextLen)}

	if date, _, ok := detectDate(line); ok {
		ctx.CurrentDate = &date
		dbg.HasDate = true
	}

	amounts := findAmounts(line)
	dbg.HasAmount = len(amounts) > 0

	switch {
	case !dbg.HasAmount && dbg.HasDate:
		dbg.Result = models.LineDateOnly
		return nil, dbg
	case !dbg.HasAmount:
		dbg.Result = models.LineNoAmount
		return nil, dbg
	case ctx.CurrentDate == nil:
		dbg.Result = models.LineNoDate
		return nil, dbg
	}

	merchant := extractMerchant(line)
	txn := &models.Transaction{
		Date:      *ctx.CurrentDate,
		Merchant:  merchant,
		Amount:    amounts[0],
		Direction: directionOf(line),
		Category:  lp.classifier.Classify(merchant),
		RawText:   strings.TrimSpace(truncate(line, models.MaxRawTextLen)),
	}
	dbg.Result = models.LineParsed
	return txn, dbg
}
