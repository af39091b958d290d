package models

import "github.com/shopspring/decimal"

// CategoryTotal is the debit spend of one category.
type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// Summary aggregates a parsed statement for dashboard display.
type Summary struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Net         decimal.Decimal `json:"net"`
	ByCategory  []CategoryTotal `json:"byCategory"`
}

// Summarize totals debits and credits and groups debit spend by category.
// ByCategory follows taxonomy order and omits categories with no debits.
func Summarize(txns []Transaction) Summary {
	s := Summary{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	totals := make(map[Category]*CategoryTotal)
	for _, txn := range txns {
		if txn.Direction == Credit {
			s.TotalCredit = s.TotalCredit.Add(txn.Amount)
			continue
		}
		s.TotalDebit = s.TotalDebit.Add(txn.Amount)

		ct, ok := totals[txn.Category]
		if !ok {
			ct = &CategoryTotal{Category: txn.Category, Total: decimal.Zero}
			totals[txn.Category] = ct
		}
		ct.Total = ct.Total.Add(txn.Amount)
		ct.Count++
	}

	s.ByCategory = make([]CategoryTotal, 0, len(totals))
	for _, c := range Categories {
		if ct, ok := totals[c]; ok {
			s.ByCategory = append(s.ByCategory, *ct)
		}
	}
	s.Net = s.TotalCredit.Sub(s.TotalDebit)
	return s
}
