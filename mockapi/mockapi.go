// Package mockapi implements a cryptotracker.Gateway over a fixed set of
// assets, standing in for a market data backend.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/etnz/cryptotracker"
)

// ErrNotFound is returned by AssetDetail for an unknown id.
var ErrNotFound = errors.New("Cryptocurrency not found")

var assets = []cryptotracker.Asset{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Price: 63542.87, MarketCap: 1245678900000, Volume24h: 45678900000, PriceChange24h: 2.34},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Price: 3421.65, MarketCap: 412345678900, Volume24h: 21345678900, PriceChange24h: -1.23},
	{ID: "solana", Name: "Solana", Symbol: "SOL", Price: 189.32, MarketCap: 86234567890, Volume24h: 7423456789, PriceChange24h: 5.67},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA", Price: 0.93, MarketCap: 34256789012, Volume24h: 1923456789, PriceChange24h: -0.42},
	{ID: "polkadot", Name: "Polkadot", Symbol: "DOT", Price: 14.78, MarketCap: 18234567890, Volume24h: 987654321, PriceChange24h: 3.18},
}

// IDs returns the ids of the assets served, in list order.
func IDs() []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}

// Gateway serves the fixed asset list and keeps the last saved portfolio in
// memory. Its zero value is ready to use.
type Gateway struct {
	// Delay simulates the network latency of every call.
	Delay time.Duration
	// Err, when set, makes every call fail with it.
	Err error

	mu    sync.Mutex
	saved []cryptotracker.Holding
}

// New returns a Gateway answering after delay.
func New(delay time.Duration) *Gateway { return &Gateway{Delay: delay} }

// ListAssets implements cryptotracker.Gateway.
func (g *Gateway) ListAssets(ctx context.Context) ([]cryptotracker.Asset, error) {
	if err := g.call(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(assets), nil
}

// AssetDetail implements cryptotracker.Gateway.
func (g *Gateway) AssetDetail(ctx context.Context, id string) (cryptotracker.Asset, error) {
	if err := g.call(ctx); err != nil {
		return cryptotracker.Asset{}, err
	}
	i := slices.IndexFunc(assets, func(a cryptotracker.Asset) bool { return a.ID == id })
	if i < 0 {
		return cryptotracker.Asset{}, ErrNotFound
	}
	return assets[i], nil
}

// SavePortfolio implements cryptotracker.Gateway. It echoes the holdings.
func (g *Gateway) SavePortfolio(ctx context.Context, holdings []cryptotracker.Holding) ([]cryptotracker.Holding, error) {
	if err := g.call(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saved = slices.Clone(holdings)
	return slices.Clone(holdings), nil
}

// Saved returns the last saved portfolio.
func (g *Gateway) Saved() []cryptotracker.Holding {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.saved)
}

// call simulates the round trip.
func (g *Gateway) call(ctx context.Context) error {
	if g.Delay > 0 {
		t := time.NewTimer(g.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return fmt.Errorf("mock gateway: %w", ctx.Err())
		}
	}
	return g.Err
}
