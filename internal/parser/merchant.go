package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// creditKeywords mark a line as money coming in.
var creditKeywords = []string{"credit", "received", "cashback", "refund"}

// structuralTokens are direction and UPI bookkeeping words that are never
// part of a merchant name. Longer phrases come first so "received from" is
// removed whole.
var structuralTokens = regexp.MustCompile(`(?i)\b(?:paid to|received from|sent to|debit|credit|received|cashback|refund|upi|utr|ref)\b`)

var (
	separators = regexp.MustCompile(`[|•·:;,\-–—]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// directionOf classifies the whole line, not an individual amount.
func directionOf(line string) models.Direction {
	lower := strings.ToLower(line)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			return models.Credit
		}
	}
	return models.Debit
}

// extractMerchant treats whatever is left after removing amounts, dates and
// structural tokens as the merchant description.
func extractMerchant(line string) string {
	s := stripAmounts(line)
	s = stripDates(s)
	s = structuralTokens.ReplaceAllString(s, " ")
	s = separators.ReplaceAllString(s, " ")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))

	if s == "" {
		return models.UnknownMerchant
	}
	return strings.TrimSpace(truncate(s, models.MaxMerchantLen))
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
