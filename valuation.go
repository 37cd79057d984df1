package cryptotracker

// Valuation is the market value of one holding.
type Valuation struct {
	Holding Holding
	Asset   *Asset // nil when the asset is not in the asset list
	Value   Money
}

// Valuations returns one Valuation per holding, in portfolio order.
//
// A holding whose asset is not in the asset list is valued at zero, so is a
// holding whose amount or price is not a finite number.
func Valuations(s State) []Valuation {
	assets := make(map[string]Asset, len(s.Assets))
	for _, a := range s.Assets {
		assets[a.ID] = a
	}

	vals := make([]Valuation, 0, len(s.Portfolio))
	for _, h := range s.Portfolio {
		v := Valuation{Holding: h, Value: USD(0)}
		if a, ok := assets[h.AssetID]; ok {
			v.Asset = &a
			if finite(a.Price) && finite(h.Amount) {
				v.Value = USD(a.Price).Mul(Q(h.Amount))
			}
		}
		vals = append(vals, v)
	}
	return vals
}

// TotalValue returns the market value of the whole portfolio.
func TotalValue(s State) Money {
	total := USD(0)
	for _, v := range Valuations(s) {
		total = total.Add(v.Value)
	}
	return total
}

// PortfolioValue returns the sum of quantity times price over every holding
// whose asset is in the asset list. It is derived on demand, never stored.
func PortfolioValue(s State) float64 { return TotalValue(s).AsFloat() }
