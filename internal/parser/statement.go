package parser

import (
	"strings"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// StatementParser scans the extracted text of a PhonePe statement line by
// line. It keeps no state between calls and is safe for concurrent use.
type StatementParser struct {
	lines *LineParser
	debug bool
}

// Option configures a StatementParser.
type Option func(*StatementParser)

// WithDebug records a DebugLine for every scanned line.
func WithDebug() Option {
	return func(p *StatementParser) { p.debug = true }
}

// NewStatementParser returns a parser that categorizes with c.
func NewStatementParser(c Classifier, opts ...Option) *StatementParser {
	p := &StatementParser{lines: NewLineParser(c)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the human-readable statement source.
func (p *StatementParser) Name() string {
	return "PhonePe"
}

// Parse extracts transactions from raw statement text. Malformed content
// never fails: lines that yield nothing are only reflected in the counts.
func (p *StatementParser) Parse(rawText string) models.ParseResult {
	res := models.ParseResult{
		Source:       models.SourcePhonePe,
		Transactions: []models.Transaction{},
	}
	ctx := &ParseContext{}

	for _, raw := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		res.LineCount++
		ctx.LineIndex = res.LineCount

		txn, dbg := p.lines.parseLine(line, ctx)
		if txn != nil {
			res.Transactions = append(res.Transactions, *txn)
		}
		if p.debug {
			res.DebugLines = append(res.DebugLines, dbg)
		}
	}

	res.MatchedCount = len(res.Transactions)
	return res
}

// ParsePages joins extracted pages and parses them as one statement.
func (p *StatementParser) ParsePages(pages []string) (*models.ParseResult, error) {
	res := p.Parse(strings.Join(pages, "\n"))
	return &res, nil
}
