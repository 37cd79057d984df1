package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/etnz/cryptotracker"
	"github.com/etnz/cryptotracker/mockapi"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func newStore(t *testing.T, gw cryptotracker.Gateway, holdings ...cryptotracker.Holding) *cryptotracker.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := cryptotracker.NewStore(gw,
		cryptotracker.WithLogger(log),
		cryptotracker.WithInitialState(cryptotracker.State{Portfolio: holdings}))
	t.Cleanup(s.Close)
	return s
}

func TestRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
		req  cryptotracker.Action
	}{
		{"/", "home", cryptotracker.RequestAssetList{}},
		{"", "home", cryptotracker.RequestAssetList{}},
		{"/portfolio", "portfolio", cryptotracker.RequestAssetList{}},
		{"/portfolio/", "portfolio", cryptotracker.RequestAssetList{}},
		{"/details/bitcoin", "details", cryptotracker.RequestAssetDetail{ID: "bitcoin"}},
		{"/details/", "notfound", nil},
		{"/details/a/b", "notfound", nil},
		{"/nowhere", "notfound", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p := Route(tt.path)
			if p.Name != tt.want {
				t.Errorf("Route(%q) = %s, want %s", tt.path, p.Name, tt.want)
			}
			var got cryptotracker.Action
			if p.Request != nil {
				got = p.Request(cryptotracker.State{})
			}
			if got != tt.req {
				t.Errorf("Route(%q).Request() = %v, want %v", tt.path, got, tt.req)
			}
		})
	}
}

func TestRoute_PortfolioFetchesOnce(t *testing.T) {
	s := cryptotracker.State{Assets: []cryptotracker.Asset{{ID: "bitcoin"}}}
	if got := Route("/portfolio").Request(s); got != nil {
		t.Errorf("Route(/portfolio).Request() = %v, want nil once assets are known", got)
	}
}

func TestPage_Open(t *testing.T) {
	store := newStore(t, mockapi.New(0))

	out, err := Route("/details/solana").Open(context.Background(), store)
	if err != nil {
		t.Fatalf("Open() unexpected error = %v", err)
	}
	if !strings.Contains(out, "Solana (SOL)") {
		t.Errorf("Open(/details/solana) = %q, want the solana card", out)
	}

	out, err = Route("/nowhere").Open(context.Background(), store)
	if err != nil {
		t.Fatalf("Open() unexpected error = %v", err)
	}
	if !strings.Contains(out, "404 - Page Not Found") {
		t.Errorf("Open(/nowhere) = %q, want the not found page", out)
	}
}

// refusingGateway serves the mock data but fails every save.
type refusingGateway struct {
	*mockapi.Gateway
}

func (refusingGateway) SavePortfolio(context.Context, []cryptotracker.Holding) ([]cryptotracker.Holding, error) {
	return nil, errors.New("save refused")
}

func TestApplyEdit(t *testing.T) {
	store := newStore(t, mockapi.New(0), cryptotracker.Holding{AssetID: "bitcoin", Amount: 1})

	out, err := applyEdit(context.Background(), store, func(s *cryptotracker.Store) {
		s.AddAndSave(cryptotracker.Holding{AssetID: "cardano", Amount: 100})
	})
	if err != nil {
		t.Fatalf("applyEdit() unexpected error = %v", err)
	}
	for _, want := range []string{"Cardano (ADA)", "$93.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("applyEdit() = %q, want it to contain %q", out, want)
		}
	}
}

func TestApplyEdit_SaveFailureSurvives(t *testing.T) {
	store := newStore(t, refusingGateway{mockapi.New(0)})

	out, err := applyEdit(context.Background(), store, func(s *cryptotracker.Store) {
		s.AddAndSave(cryptotracker.Holding{AssetID: "bitcoin", Amount: 0.5})
	})
	if err != nil {
		t.Fatalf("applyEdit() unexpected error = %v", err)
	}
	if got := store.State().Error; got != "save refused" {
		t.Errorf("State().Error = %q, want %q", got, "save refused")
	}
	if !strings.Contains(out, "save refused") {
		t.Errorf("applyEdit() = %q, want the save error", out)
	}
	// The change is kept locally.
	if _, ok := store.State().Holding("bitcoin"); !ok {
		t.Errorf("State().Portfolio = %v, want bitcoin kept", store.State().Portfolio)
	}
}

func TestParseHoldings(t *testing.T) {
	got, err := ParseHoldings(" bitcoin=0.5, ethereum=2 ,")
	if err != nil {
		t.Fatalf("ParseHoldings() unexpected error = %v", err)
	}
	want := []cryptotracker.Holding{{AssetID: "bitcoin", Amount: 0.5}, {AssetID: "ethereum", Amount: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseHoldings() mismatch (-want +got):\n%s", diff)
	}

	if got, err := ParseHoldings(""); err != nil || len(got) != 0 {
		t.Errorf("ParseHoldings(\"\") = %v, %v, want no holdings", got, err)
	}
	for _, bad := range []string{"bitcoin", "bitcoin=abc", "bitcoin=0", "bitcoin=-1", "=1", "bitcoin=1e400", "bitcoin=NaN", "bitcoin=1e-400"} {
		if _, err := ParseHoldings(bad); err == nil {
			t.Errorf("ParseHoldings(%q) expected an error", bad)
		}
	}
}

func TestEnv(t *testing.T) {
	t.Setenv(EnvGateway, "remote")
	if got := env("mock", EnvGateway, "x"); got != "mock" {
		t.Errorf("env() = %q, want the flag value", got)
	}
	if got := env("", EnvGateway, "x"); got != "remote" {
		t.Errorf("env() = %q, want the environment value", got)
	}
	if got := env("", "CT_UNSET_FOR_TEST", "x"); got != "x" {
		t.Errorf("env() = %q, want the default", got)
	}
}

func TestNewGateway(t *testing.T) {
	t.Setenv(EnvGateway, "remote")
	gw, err := NewGateway(logrus.New())
	if err != nil {
		t.Fatalf("NewGateway() unexpected error = %v", err)
	}
	if _, ok := gw.(*mockapi.Gateway); ok {
		t.Errorf("NewGateway() = %T, want the remote gateway", gw)
	}

	t.Setenv(EnvGateway, "carrier-pigeon")
	if _, err := NewGateway(logrus.New()); err == nil {
		t.Errorf("NewGateway() expected an error for an unknown gateway")
	}
}

func runShell(t *testing.T, store *cryptotracker.Store, input string) string {
	t.Helper()
	var out bytes.Buffer
	sh := NewShell(store, &out, strings.NewReader(input))
	sh.Print = fprintPlain
	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("Run() unexpected error = %v", err)
	}
	return out.String()
}

func TestShell(t *testing.T) {
	gw := mockapi.New(0)
	store := newStore(t, gw)

	out := runShell(t, store, strings.Join([]string{
		"list",
		"add bitcoin 0.5",
		"add ethereum 2",
		"update ethereum 1",
		"remove ethereum",
		"portfolio",
		"bye",
		"list", // never executed
	}, "\n"))

	for _, want := range []string{"Cryptocurrencies", "Polkadot", "My Portfolio", "$31,771.44"} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output does not contain %q:\n%s", want, out)
		}
	}
	want := []cryptotracker.Holding{{AssetID: "bitcoin", Amount: 0.5}}
	if diff := cmp.Diff(want, store.State().Portfolio); diff != "" {
		t.Errorf("portfolio mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, gw.Saved()); diff != "" {
		t.Errorf("saved portfolio mismatch (-want +got):\n%s", diff)
	}
}

func TestShell_ErrorThenClear(t *testing.T) {
	store := newStore(t, mockapi.New(0))

	out := runShell(t, store, "details dogecoin\n")
	if !strings.Contains(out, "Cryptocurrency not found") {
		t.Errorf("shell output does not contain the error:\n%s", out)
	}
	if !store.State().HasError() {
		t.Fatalf("State().Error is empty, want the not found error")
	}

	out = runShell(t, store, "clear\n")
	if !strings.Contains(out, "Error cleared.") || store.State().HasError() {
		t.Errorf("clear did not dismiss the error: %q, output:\n%s", store.State().Error, out)
	}
}

func TestShell_SaveFailureOnFreshStore(t *testing.T) {
	store := newStore(t, refusingGateway{mockapi.New(0)})

	out := runShell(t, store, "add bitcoin 0.5\n")
	if !strings.Contains(out, "save refused") {
		t.Errorf("shell output does not contain the save error:\n%s", out)
	}
	if got := store.State().Error; got != "save refused" {
		t.Errorf("State().Error = %q, want %q", got, "save refused")
	}
}

func TestShell_InvalidCommands(t *testing.T) {
	store := newStore(t, mockapi.New(0), cryptotracker.Holding{AssetID: "bitcoin", Amount: 1})

	out := runShell(t, store, "frobnicate\nadd bitcoin\nadd bitcoin zero\n/nowhere\nhelp\n")
	for _, want := range []string{`Unknown command "frobnicate"`, "Usage: add <id> <amount>", "Error: invalid amount", "404 - Page Not Found", "Commands:"} {
		if !strings.Contains(out, want) {
			t.Errorf("shell output does not contain %q:\n%s", want, out)
		}
	}
	if got := store.State().Portfolio; len(got) != 1 || got[0].Amount != 1 {
		t.Errorf("portfolio = %v, want it unchanged", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	fs := flag.NewFlagSet("ct", flag.ContinueOnError)
	fs.String("gateway", "", "")
	c := CompletionCommand(fs)

	for _, name := range []string{"list", "details", "portfolio", "add", "update", "remove", "shell", "assist"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("CompletionCommand() has no %q subcommand", name)
		}
	}
	got := c.Sub["details"].Args.Predict("")
	if diff := cmp.Diff(mockapi.IDs(), got); diff != "" {
		t.Errorf("details args prediction mismatch (-want +got):\n%s", diff)
	}
	if got := c.Flags["gateway"].Predict(""); len(got) != 2 {
		t.Errorf("gateway flag prediction = %v, want mock and remote", got)
	}
}
