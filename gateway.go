package cryptotracker

import "context"

// Gateway is the source of market data and the sink of portfolio saves.
//
// The Store makes no assumption about the transport. It only requires that a
// failure is reported as an error whose message can be displayed to the user.
type Gateway interface {
	// ListAssets returns every tracked asset. IDs are unique in the list.
	ListAssets(ctx context.Context) ([]Asset, error)
	// AssetDetail returns one asset, or an error if the id is unknown.
	AssetDetail(ctx context.Context, id string) (Asset, error)
	// SavePortfolio persists the holdings and returns them as saved.
	SavePortfolio(ctx context.Context, holdings []Holding) ([]Holding, error)
}
