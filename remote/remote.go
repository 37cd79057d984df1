// Package remote implements a cryptotracker.Gateway over a REST market data API.
//
// The API exposes:
//
//	GET  {base}/cryptocurrencies       the asset list
//	GET  {base}/cryptocurrencies/{id}  one asset
//	POST {base}/portfolio              saves the holdings, answers them back
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/cryptotracker"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned by AssetDetail when the API does not know the id.
var ErrNotFound = errors.New("Cryptocurrency not found")

// DefaultBaseURL is the API used when none is configured.
const DefaultBaseURL = "https://api.example.com"

// Client is a cryptotracker.Gateway calling a remote API.
type Client struct {
	base     string
	listPath string
	client   *http.Client
}

// New returns a Client for the API at base.
//
// listPath is an optional JSONPath locating the asset array in the list
// response, for APIs wrapping their payload, e.g. "$.data". When empty the
// whole response is the array.
func New(base, listPath string, log logrus.FieldLogger) *Client {
	return &Client{
		base:     strings.TrimSuffix(base, "/"),
		listPath: listPath,
		client:   newLoggingClient(log),
	}
}

// ListAssets implements cryptotracker.Gateway.
func (c *Client) ListAssets(ctx context.Context) ([]cryptotracker.Asset, error) {
	addr := c.base + "/cryptocurrencies"
	assets := make([]cryptotracker.Asset, 0)
	if c.listPath == "" {
		if err := jwdo(ctx, c.client, http.MethodGet, addr, nil, &assets); err != nil {
			return nil, fmt.Errorf("cannot list assets: %w", err)
		}
		return assets, nil
	}

	var jobj any
	if err := jwdo(ctx, c.client, http.MethodGet, addr, nil, &jobj); err != nil {
		return nil, fmt.Errorf("cannot list assets: %w", err)
	}
	if err := extract(c.listPath, jobj, &assets); err != nil {
		return nil, fmt.Errorf("cannot list assets: %w", err)
	}
	return assets, nil
}

// AssetDetail implements cryptotracker.Gateway.
func (c *Client) AssetDetail(ctx context.Context, id string) (cryptotracker.Asset, error) {
	addr := c.base + "/cryptocurrencies/" + url.PathEscape(id)
	var asset cryptotracker.Asset
	err := jwdo(ctx, c.client, http.MethodGet, addr, nil, &asset)
	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		return cryptotracker.Asset{}, ErrNotFound
	}
	if err != nil {
		return cryptotracker.Asset{}, fmt.Errorf("cannot get %q: %w", id, err)
	}
	return asset, nil
}

// SavePortfolio implements cryptotracker.Gateway.
func (c *Client) SavePortfolio(ctx context.Context, holdings []cryptotracker.Holding) ([]cryptotracker.Holding, error) {
	if holdings == nil {
		holdings = []cryptotracker.Holding{} // an empty portfolio is "[]", not "null"
	}
	saved := make([]cryptotracker.Holding, 0, len(holdings))
	if err := jwdo(ctx, c.client, http.MethodPost, c.base+"/portfolio", holdings, &saved); err != nil {
		return nil, fmt.Errorf("cannot save portfolio: %w", err)
	}
	return saved, nil
}
