package cryptotracker

import "fmt"

// Asset is a tradable cryptocurrency with its market metrics.
//
// Assets are created by a Gateway response and never mutated in place: a new
// fetch replaces the previous list or detail wholesale.
type Asset struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Price          float64 `json:"price"`
	MarketCap      float64 `json:"market_cap"`
	Volume24h      float64 `json:"volume_24h"`
	PriceChange24h float64 `json:"price_change_24h"` // in percent, signed
}

func (a Asset) String() string { return fmt.Sprintf("%s (%s)", a.Name, a.Symbol) }

// Holding is the quantity of one asset held in the portfolio.
//
// AssetID references an Asset by its ID, the asset itself might not be known.
type Holding struct {
	AssetID string  `json:"crypto_id"`
	Amount  float64 `json:"amount"`
}

func (h Holding) String() string { return fmt.Sprintf("%v %s", h.Amount, h.AssetID) }
