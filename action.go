package cryptotracker

import "fmt"

// Action is a request to change the State.
//
// The set of actions is closed: only the types declared in this package
// implement it.
type Action interface {
	fmt.Stringer
	action()
}

// RequestAssetList starts fetching the asset list.
type RequestAssetList struct{}

// AssetListLoaded replaces the asset list.
type AssetListLoaded struct{ Assets []Asset }

// RequestAssetDetail starts fetching one asset's detail.
type RequestAssetDetail struct{ ID string }

// AssetDetailLoaded sets the selected asset.
type AssetDetailLoaded struct{ Asset Asset }

// AddHolding appends a holding, unless the asset is already held.
type AddHolding struct{ Holding Holding }

// RemoveHolding removes the holding of an asset.
type RemoveHolding struct{ ID string }

// UpdateHolding replaces the holding of an asset, if it is held.
type UpdateHolding struct{ Holding Holding }

// RequestPortfolioSave starts saving the portfolio.
type RequestPortfolioSave struct{}

// Failed records the message of a failed operation.
type Failed struct{ Message string }

// ClearError discards the last error.
type ClearError struct{}

// SetLoading sets the loading flag.
type SetLoading struct{ Loading bool }

func (RequestAssetList) action()     {}
func (AssetListLoaded) action()      {}
func (RequestAssetDetail) action()   {}
func (AssetDetailLoaded) action()    {}
func (AddHolding) action()           {}
func (RemoveHolding) action()        {}
func (UpdateHolding) action()        {}
func (RequestPortfolioSave) action() {}
func (Failed) action()               {}
func (ClearError) action()           {}
func (SetLoading) action()           {}

func (RequestAssetList) String() string     { return "RequestAssetList" }
func (a AssetListLoaded) String() string    { return fmt.Sprintf("AssetListLoaded(%d)", len(a.Assets)) }
func (a RequestAssetDetail) String() string { return fmt.Sprintf("RequestAssetDetail(%s)", a.ID) }
func (a AssetDetailLoaded) String() string  { return fmt.Sprintf("AssetDetailLoaded(%s)", a.Asset.ID) }
func (a AddHolding) String() string         { return fmt.Sprintf("AddHolding(%v)", a.Holding) }
func (a RemoveHolding) String() string      { return fmt.Sprintf("RemoveHolding(%s)", a.ID) }
func (a UpdateHolding) String() string      { return fmt.Sprintf("UpdateHolding(%v)", a.Holding) }
func (RequestPortfolioSave) String() string { return "RequestPortfolioSave" }
func (a Failed) String() string             { return fmt.Sprintf("Failed(%q)", a.Message) }
func (ClearError) String() string           { return "ClearError" }
func (a SetLoading) String() string         { return fmt.Sprintf("SetLoading(%v)", a.Loading) }
