package cryptotracker

// State is the aggregate root of the application.
//
// A State is a value: once published by the Store it is never modified. Every
// transition builds new slices instead of writing into the previous ones, so a
// snapshot can be shared freely between goroutines.
type State struct {
	Assets    []Asset   // as returned by the last list fetch
	Portfolio []Holding // in insertion order, at most one per asset
	Selected  *Asset    // last asset detail fetched, if any
	Loading   bool
	Error     string // empty when there is no error
}

// NewState returns the initial empty state.
func NewState() State { return State{} }

// HasError reports whether the last operation failed.
func (s State) HasError() bool { return s.Error != "" }

// Asset returns the asset with the given id from the asset list.
func (s State) Asset(id string) (Asset, bool) {
	for _, a := range s.Assets {
		if a.ID == id {
			return a, true
		}
	}
	return Asset{}, false
}

// Holding returns the portfolio holding for the given asset id.
func (s State) Holding(id string) (Holding, bool) {
	for _, h := range s.Portfolio {
		if h.AssetID == id {
			return h, true
		}
	}
	return Holding{}, false
}
