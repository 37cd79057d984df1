package cryptotracker

import "slices"

// Transition returns the state that results from applying a to s.
//
// It is pure: s is never modified and the result shares no slice that the
// transition writes to. A nil action returns s unchanged.
func Transition(s State, a Action) State {
	switch a := a.(type) {
	case RequestAssetList:
		s.Loading = true
		s.Error = ""

	case AssetListLoaded:
		s.Assets = slices.Clone(a.Assets)
		s.Loading = false

	case RequestAssetDetail:
		s.Loading = true
		s.Error = ""

	case AssetDetailLoaded:
		selected := a.Asset
		s.Selected = &selected
		s.Loading = false

	case AddHolding:
		if _, exists := s.Holding(a.Holding.AssetID); exists {
			break // first write wins
		}
		portfolio := make([]Holding, 0, len(s.Portfolio)+1)
		portfolio = append(portfolio, s.Portfolio...)
		s.Portfolio = append(portfolio, a.Holding)

	case RemoveHolding:
		portfolio := make([]Holding, 0, len(s.Portfolio))
		for _, h := range s.Portfolio {
			if h.AssetID != a.ID {
				portfolio = append(portfolio, h)
			}
		}
		s.Portfolio = portfolio

	case UpdateHolding:
		i := slices.IndexFunc(s.Portfolio, func(h Holding) bool { return h.AssetID == a.Holding.AssetID })
		if i < 0 {
			break
		}
		portfolio := slices.Clone(s.Portfolio)
		portfolio[i] = a.Holding
		s.Portfolio = portfolio

	case RequestPortfolioSave:
		s.Loading = true

	case Failed:
		s.Error = a.Message
		s.Loading = false

	case ClearError:
		s.Error = ""

	case SetLoading:
		s.Loading = a.Loading
	}
	return s
}
