package core

// Totals is the aggregate view over a transaction list. Sums are naive:
// transactions in different currencies add up without conversion, which is
// accepted behavior inherited from the persisted data model.
type Totals struct {
	TotalIncome   Money
	TotalExpenses Money
	Balance       Money
}

// CalculateTotals reduces a transaction list into income and expense totals
// and their balance. An empty list yields all zeros.
func CalculateTotals(transactions []Transaction) Totals {
	var income, expenses int64
	for _, t := range transactions {
		if t.Type == TypeIncome {
			income += t.Amount.Cents
		} else {
			expenses += t.Amount.Cents
		}
	}
	return Totals{
		TotalIncome:   Money{Cents: income},
		TotalExpenses: Money{Cents: expenses},
		Balance:       Money{Cents: income - expenses},
	}
}

// CardBalance is the net position of one card or bank instrument: negative
// means outstanding debt, non-negative means credit.
type CardBalance struct {
	Method  string
	Balance Money
}

// CardBalances partitions transactions by non-cash payment method and nets
// each into a running balance (expense subtracts, income adds). Methods
// appear in first-seen order, once each. Transactions without a payment
// method or paid with a cash equivalent are skipped.
func CardBalances(transactions []Transaction) []CardBalance {
	index := make(map[string]int)
	var out []CardBalance
	for _, t := range transactions {
		if t.PaymentMethod == "" || IsCashEquivalent(t.PaymentMethod) {
			continue
		}
		i, ok := index[t.PaymentMethod]
		if !ok {
			i = len(out)
			index[t.PaymentMethod] = i
			out = append(out, CardBalance{Method: t.PaymentMethod})
		}
		if t.Type == TypeExpense {
			out[i].Balance.Cents -= t.Amount.Cents
		} else {
			out[i].Balance.Cents += t.Amount.Cents
		}
	}
	return out
}

// ReportCurrency picks the currency used to display card balances: the one
// carried by the first transaction in the overall list, regardless of which
// card each balance belongs to. This mirrors the historical report behavior
// and is kept on purpose; fallback applies when the list is empty or the
// first record has no currency.
func ReportCurrency(transactions []Transaction, fallback string) string {
	if len(transactions) > 0 && transactions[0].Currency != "" {
		return transactions[0].Currency
	}
	return fallback
}
