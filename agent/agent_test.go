package agent

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/etnz/cryptotracker"
	"github.com/etnz/cryptotracker/mockapi"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

func newStore(t *testing.T, gw cryptotracker.Gateway, initial cryptotracker.State) *cryptotracker.Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := cryptotracker.NewStore(gw, cryptotracker.WithLogger(log), cryptotracker.WithInitialState(initial))
	t.Cleanup(s.Close)
	return s
}

func call(t *testing.T, lib Library, name string, args map[string]any) map[string]any {
	t.Helper()
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("%s() response = {%q, %q}, want {1, %s}", name, resp.ID, resp.Name, name)
	}
	return resp.Response
}

func TestLibrary_UnknownFunction(t *testing.T) {
	lib := NewLibrary([]Function{})
	got := call(t, lib, "Nope", nil)
	if got["error"] != "unknown function Nope" {
		t.Errorf("Nope() response = %v, want an unknown function error", got)
	}
}

func TestFunctions(t *testing.T) {
	store := newStore(t, mockapi.New(0), cryptotracker.State{
		Portfolio: []cryptotracker.Holding{{AssetID: "bitcoin", Amount: 0.5}},
	})
	lib := NewLibrary(Functions(store))

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "Assets", want: "Ethereum"},
		{name: "AssetDetail", args: map[string]any{"id": "solana"}, want: "Solana (SOL)"},
		{name: "Portfolio", want: "$31,771.44"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := call(t, lib, tt.name, tt.args)
			out, _ := got["output"].(string)
			if !strings.Contains(out, tt.want) {
				t.Errorf("%s() = %v, want output containing %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFunctions_Errors(t *testing.T) {
	gw := mockapi.New(0)
	lib := NewLibrary(Functions(newStore(t, gw, cryptotracker.State{})))

	if got := call(t, lib, "AssetDetail", map[string]any{"id": 42}); got["error"] == nil {
		t.Errorf("AssetDetail(42) = %v, want an argument error", got)
	}
	if got := call(t, lib, "AssetDetail", map[string]any{"id": "dogecoin"}); got["error"] != mockapi.ErrNotFound.Error() {
		t.Errorf("AssetDetail(dogecoin) = %v, want %q", got, mockapi.ErrNotFound)
	}

	gw.Err = errors.New("network down")
	if got := call(t, lib, "Assets", nil); got["error"] != "network down" {
		t.Errorf("Assets() = %v, want the gateway error", got)
	}
}

func TestExpert_Declaration(t *testing.T) {
	e := NewAnalyst(newStore(t, mockapi.New(0), cryptotracker.State{}))
	d := e.Declaration()
	if d.Name != "Analyst" || len(d.Parameters.Required) != 1 || d.Parameters.Required[0] != "question" {
		t.Errorf("Declaration() = %+v, want Analyst with a required question", d)
	}
	decls := e.Config.Tools[0].FunctionDeclarations
	if len(decls) != 3 {
		t.Errorf("Analyst declares %d functions, want 3", len(decls))
	}
}

func TestBriefing(t *testing.T) {
	tests := []struct {
		name  string
		state cryptotracker.State
		want  string
	}{
		{
			name:  "empty",
			state: cryptotracker.State{},
			want:  "Context: the user's portfolio is empty.",
		},
		{
			name: "holdings and prices",
			state: cryptotracker.State{
				Assets:    []cryptotracker.Asset{{ID: "bitcoin"}, {ID: "ethereum"}},
				Portfolio: []cryptotracker.Holding{{AssetID: "bitcoin", Amount: 0.5}, {AssetID: "ethereum", Amount: 2}},
			},
			want: "Context: the user's portfolio holds 0.5 bitcoin, 2 ethereum. 2 cryptocurrencies are priced.",
		},
		{
			name:  "error",
			state: cryptotracker.State{Error: "network down"},
			want:  "Context: the user's portfolio is empty. The last request failed with: network down.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Briefing(tt.state).Text; got != tt.want {
				t.Errorf("Briefing() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpert_CallErrors(t *testing.T) {
	e := NewTrader()
	lib := NewLibrary([]*Expert{e})

	got := call(t, lib, "Trader", map[string]any{"question": 42})
	if got["error"] != "argument 'question' is not a string as expected but int" {
		t.Errorf("Trader(42) = %v, want an argument error", got)
	}

	got = call(t, lib, "Trader", map[string]any{"question": "news?"})
	if msg, _ := got["error"].(string); !strings.Contains(msg, "expert Trader is not started") {
		t.Errorf("Trader(news?) = %v, want a not started error", got)
	}
	if e.Started() {
		t.Errorf("Started() = true, want false before Start")
	}
}

func TestNew_Facilitator(t *testing.T) {
	store := newStore(t, mockapi.New(0), cryptotracker.State{})
	a := New(store, io.Discard, strings.NewReader(""), nil, NewTrader(), NewAnalyst(store))

	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if strings.Join(names, ",") != "Trader,Analyst" {
		t.Errorf("Facilitator tools = %v, want [Trader Analyst]", names)
	}
	if a.Facilitator.Description == "" {
		t.Errorf("Facilitator has no description")
	}
}
