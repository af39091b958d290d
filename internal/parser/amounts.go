package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches currency-marked amounts: ₹1,234.56, Rs.1234, Rs 50,
// INR 1,234. Rs and INR must start a word so "Mrs 5" is not an amount. The
// whole fraction is consumed so extra decimals never leak into the merchant;
// parseAmount rounds it to paise.
var amountPattern = regexp.MustCompile(`(?i)(?:₹|\bRs\.?|\bINR)\s*(\d[\d,]*(?:\.\d+)?)`)

// maxPlausibleAmount is exclusive. Anything at or above it is assumed to be
// an extraction artifact rather than a UPI payment.
var maxPlausibleAmount = decimal.NewFromInt(1_000_000)

// findAmounts returns every plausible amount on the line in order of
// appearance, rounded to paise.
func findAmounts(line string) []decimal.Decimal {
	var amounts []decimal.Decimal
	for _, m := range amountPattern.FindAllStringSubmatch(line, -1) {
		amt, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		amounts = append(amounts, amt)
	}
	return amounts
}

// parseAmount converts "1,234.56" to a decimal and applies the plausibility
// window 0 < amount < 1,000,000.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	amt = amt.Round(2)
	if !amt.IsPositive() || amt.GreaterThanOrEqual(maxPlausibleAmount) {
		return decimal.Zero, false
	}
	return amt, true
}

// stripAmounts removes every currency-marked amount token, plausible or not.
func stripAmounts(s string) string {
	return amountPattern.ReplaceAllString(s, " ")
}
