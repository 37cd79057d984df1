package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/cryptotracker"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

var bitcoin = cryptotracker.Asset{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Price: 63542.87, MarketCap: 1245678900000, Volume24h: 45678900000, PriceChange24h: 2.34}

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newServer serves a fake market data API.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cryptocurrencies", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":"bitcoin","name":"Bitcoin","symbol":"BTC","price":63542.87,"market_cap":1245678900000,"volume_24h":45678900000,"price_change_24h":2.34}]`)
	})
	mux.HandleFunc("GET /v2/cryptocurrencies", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"ok","data":[{"id":"bitcoin","name":"Bitcoin","symbol":"BTC","price":63542.87,"market_cap":1245678900000,"volume_24h":45678900000,"price_change_24h":2.34}]}`)
	})
	mux.HandleFunc("GET /cryptocurrencies/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "bitcoin" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(bitcoin)
	})
	mux.HandleFunc("POST /portfolio", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "bad content type", http.StatusUnsupportedMediaType)
			return
		}
		io.Copy(w, r.Body)
	})
	mux.HandleFunc("/broken/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListAssets(t *testing.T) {
	srv := newServer(t)
	tests := []struct {
		name     string
		base     string
		listPath string
	}{
		{"plain array", srv.URL, ""},
		{"enveloped", srv.URL + "/v2", "$.data"},
		{"trailing slash", srv.URL + "/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.base, tt.listPath, quiet())
			got, err := c.ListAssets(context.Background())
			if err != nil {
				t.Fatalf("ListAssets() error = %v", err)
			}
			if diff := cmp.Diff([]cryptotracker.Asset{bitcoin}, got); diff != "" {
				t.Errorf("ListAssets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClient_ListAssets_BadPath(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL+"/v2", "$.status", quiet())
	if _, err := c.ListAssets(context.Background()); err == nil {
		t.Error("ListAssets() error = nil, want an error for a non array value")
	}
}

func TestClient_AssetDetail(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL, "", quiet())

	got, err := c.AssetDetail(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("AssetDetail() error = %v", err)
	}
	if got != bitcoin {
		t.Errorf("AssetDetail() = %+v, want %+v", got, bitcoin)
	}

	_, err = c.AssetDetail(context.Background(), "dogecoin")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("AssetDetail(dogecoin) error = %v, want %v", err, ErrNotFound)
	}
}

func TestClient_SavePortfolio(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL, "", quiet())

	holdings := []cryptotracker.Holding{{AssetID: "bitcoin", Amount: 0.25}, {AssetID: "solana", Amount: 10}}
	got, err := c.SavePortfolio(context.Background(), holdings)
	if err != nil {
		t.Fatalf("SavePortfolio() error = %v", err)
	}
	if diff := cmp.Diff(holdings, got); diff != "" {
		t.Errorf("SavePortfolio() mismatch (-want +got):\n%s", diff)
	}

	got, err = c.SavePortfolio(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("SavePortfolio(nil) = %v, %v, want empty", got, err)
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := newServer(t)
	c := New(srv.URL+"/broken", "", quiet())

	_, err := c.ListAssets(context.Background())
	var status *StatusError
	if !errors.As(err, &status) {
		t.Fatalf("ListAssets() error = %v, want a *StatusError", err)
	}
	if status.Code != http.StatusInternalServerError {
		t.Errorf("Code = %d, want %d", status.Code, http.StatusInternalServerError)
	}
}

// A failing API surfaces as a displayable message in the store.
func TestClient_WithStore(t *testing.T) {
	srv := newServer(t)
	s := cryptotracker.NewStore(New(srv.URL+"/broken", "", quiet()), cryptotracker.WithLogger(quiet()))
	defer s.Close()

	s.Dispatch(cryptotracker.RequestAssetList{})
	if err := s.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := s.State()
	if !st.HasError() || st.Loading {
		t.Errorf("State() = %+v, want an error and not loading", st)
	}
}
