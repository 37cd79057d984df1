package cmd

import (
	"context"
	"strings"

	"github.com/etnz/cryptotracker"
	"github.com/etnz/cryptotracker/renderer"
)

// Page is the view served at a path.
type Page struct {
	Name string // home, details, portfolio or notfound
	Path string
	// Request returns the action loading the page data, nil when there is
	// nothing to load.
	Request func(cryptotracker.State) cryptotracker.Action
	View    func(cryptotracker.State) string
}

// Route resolves a path:
//
//	/              the asset list
//	/details/{id}  the details of an asset
//	/portfolio     the portfolio
//
// Anything else is not found.
func Route(path string) Page {
	p := strings.TrimSpace(path)
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
	}
	switch {
	case p == "/" || p == "":
		return Page{
			Name:    "home",
			Path:    "/",
			Request: func(cryptotracker.State) cryptotracker.Action { return cryptotracker.RequestAssetList{} },
			View:    renderer.Home,
		}
	case p == "/portfolio":
		return Page{
			Name: "portfolio",
			Path: p,
			Request: func(s cryptotracker.State) cryptotracker.Action {
				// Valuing requires the asset list, fetched once.
				if len(s.Assets) == 0 {
					return cryptotracker.RequestAssetList{}
				}
				return nil
			},
			View: renderer.Portfolio,
		}
	case strings.HasPrefix(p, "/details/"):
		id := strings.TrimPrefix(p, "/details/")
		if id != "" && !strings.Contains(id, "/") {
			return Page{
				Name:    "details",
				Path:    p,
				Request: func(cryptotracker.State) cryptotracker.Action { return cryptotracker.RequestAssetDetail{ID: id} },
				View:    func(s cryptotracker.State) string { return renderer.Details(s, id) },
			}
		}
	}
	return Page{
		Name: "notfound",
		Path: path,
		View: func(cryptotracker.State) string { return renderer.NotFound(path) },
	}
}

// Open loads the page data through the store, and renders the page once every
// request has been answered.
func (p Page) Open(ctx context.Context, store *cryptotracker.Store) (string, error) {
	if p.Request != nil {
		if a := p.Request(store.State()); a != nil {
			store.Dispatch(a)
		}
	}
	if err := store.Wait(ctx); err != nil {
		return "", err
	}
	return p.View(store.State()), nil
}
