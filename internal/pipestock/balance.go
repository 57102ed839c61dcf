package pipestock

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DerivedBalances replays a manager's movement log and returns the implied
// quantity per size: Purchase adds, Usage subtracts. This is the balance the
// availability checks trust; the materialized stock rows are a cache of it and
// the two agree whenever every mutation went through the protocols against
// live rows.
func DerivedBalances(entries []*PipeLog) []SizeBalance {
	totals := make(map[string]*SizeBalance)
	for _, e := range entries {
		key := e.Diameter.String()
		bal, ok := totals[key]
		if !ok {
			bal = &SizeBalance{Size: e.Diameter}
			totals[key] = bal
		}
		switch e.Kind {
		case LogKindPurchase:
			bal.Quantity += e.Quantity
		case LogKindUsage:
			bal.Quantity -= e.Quantity
		}
	}
	out := make([]SizeBalance, 0, len(totals))
	for _, bal := range totals {
		out = append(out, *bal)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Size.LessThan(out[j].Size)
	})
	return out
}

// DerivedBalance replays the log for a single size.
func DerivedBalance(entries []*PipeLog, size decimal.Decimal) int {
	total := 0
	for _, e := range entries {
		if !e.Diameter.Equal(size) {
			continue
		}
		switch e.Kind {
		case LogKindPurchase:
			total += e.Quantity
		case LogKindUsage:
			total -= e.Quantity
		}
	}
	return total
}

// DisplayBalances filters stock lines down to the rows a listing shows:
// positive quantities only. Zero and negative rows stay in storage but are
// hidden from balance views.
func DisplayBalances(items []*StockItem) []SizeBalance {
	out := make([]SizeBalance, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		out = append(out, SizeBalance{Size: item.Size, Quantity: item.Quantity})
	}
	return out
}
