package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says whether money left (DEBIT) or entered (CREDIT) the account.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Category is one entry of the closed spend taxonomy.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryRecharge      Category = "recharge" // bills and utilities
	CategoryTransfers     Category = "transfers"
	CategoryOther         Category = "other"
)

// Categories lists the taxonomy in tie-break order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryRecharge,
	CategoryTransfers,
	CategoryOther,
}

// Valid reports whether c belongs to the taxonomy.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// UnknownMerchant is used when nothing is left of a line after cleanup.
const UnknownMerchant = "Unknown Merchant"

const (
	MaxMerchantLen = 40
	MaxRawTextLen  = 200
)

// Transaction is a provisional record parsed from one statement line.
// It has not been validated or stored by any persistence layer.
type Transaction struct {
	Date      time.Time       `json:"date"`
	Merchant  string          `json:"merchant"`
	Amount    decimal.Decimal `json:"amount"`
	Direction Direction       `json:"type"`
	Category  Category        `json:"category"`
	RawText   string          `json:"rawText"`
}

// SourceType identifies a supported statement layout.
type SourceType string

const (
	SourcePhonePe SourceType = "phonepe"
)

// Line outcomes recorded in DebugLine.Result.
const (
	LineParsed   = "parsed"
	LineDateOnly = "date-only"
	LineNoDate   = "no-date"
	LineNoAmount = "no-amount"
)

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	LineNum   int    `json:"lineNum"`
	Text      string `json:"text"`
	HasDate   bool   `json:"hasDate"`
	HasAmount bool   `json:"hasAmount"`
	Result    string `json:"result"`
}

// ParseResult is the output of one statement parse.
type ParseResult struct {
	Source       SourceType    `json:"source"`
	Transactions []Transaction `json:"transactions"`
	LineCount    int           `json:"lineCount"`
	MatchedCount int           `json:"matchedCount"`
	DebugLines   []DebugLine   `json:"debugLines,omitempty"`
}
