package plaid

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/liamba05/Fynnance/internal/model"
)

// formatHoldings joins holdings with their securities and computes gain/loss.
// The result is sorted by value, largest first.
//
// A holding whose security is missing from the response is kept as "Unknown".
// Gain/loss is only reported when both value and cost basis are known, and the
// percentage only when the cost basis is non-zero.
func formatHoldings(holdings []holding, securities []security) []model.Holding {
	byID := make(map[string]security, len(securities))
	for _, s := range securities {
		byID[s.SecurityID] = s
	}

	out := make([]model.Holding, 0, len(holdings))
	for _, h := range holdings {
		sec := byID[h.SecurityID]

		value := h.InstitutionPrice * h.Quantity
		if h.InstitutionValue != nil {
			value = *h.InstitutionValue
		}

		formatted := model.Holding{
			AccountID:  h.AccountID,
			SecurityID: h.SecurityID,
			Name:       orDefault(sec.Name, "Unknown"),
			Ticker:     deref(sec.TickerSymbol),
			Type:       orDefault(sec.Type, "unknown"),
			Quantity:   h.Quantity,
			Price:      h.InstitutionPrice,
			Value:      value,
			CostBasis:  h.CostBasis,
		}

		if h.CostBasis != nil && h.InstitutionValue != nil {
			cost := decimal.NewFromFloat(*h.CostBasis)
			gain := decimal.NewFromFloat(value).Sub(cost)
			g := gain.Round(2).InexactFloat64()
			formatted.GainLoss = &g
			if !cost.IsZero() {
				pct := gain.Div(cost).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
				formatted.GainLossPct = &pct
			}
		}

		out = append(out, formatted)
	}

	slices.SortStableFunc(out, func(a, b model.Holding) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return out
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
