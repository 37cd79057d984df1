package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/cryptotracker"
	"github.com/etnz/cryptotracker/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: "The Facilitator leads the conversation about the crypto market and the user's portfolio.",
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to get news or information about the cryptocurrencies in the market
			and in their portfolio.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.

			Each question comes with a context line listing the user's holdings. Ask the Analyst
			for prices and values, never compute them from memory.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search for market news.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert crypto trader,
		very well aware of the cryptocurrencies, exchanges and the latest news about them.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a expert in crypto trading, you can search and find about anything related to
			cryptocurrencies, exchanges and markets. You Leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latests news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst returns the expert reading the market and the portfolio held by
// the store.
func NewAnalyst(store *cryptotracker.Store) *Expert {
	lib := Functions(store)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They are in charge of the market data and of the user's portfolio.
		They know the listed cryptocurrencies, their prices, and the value of each holding.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's crypto portfolio.
				You know how to use the Tools to extract relevant information about the market and the portfolio.
				You are part of a team of experts, yours is everything about the user's portfolio.

				Use the available tools to get information about
				  - the list of cryptocurrencies and their prices
				  - the details of one cryptocurrency
				  - the portfolio holdings and their value
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Functions returns the functions reading the store. Each call fetches fresh
// data through the store and renders the matching view.
func Functions(store *cryptotracker.Store) []Function {
	markdown := &genai.Schema{
		Type:        genai.TypeString,
		Description: "A markdown-formatted view.",
	}
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Assets",
				Description: "Assets lists the cryptocurrencies on the market with their price and 24h change.",
				Response:    markdown,
			},
			Func: func(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				out, err := fetch(ctx, store, cryptotracker.RequestAssetList{}, renderer.Home)
				return respond(id, "Assets", out, err)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "AssetDetail",
				Description: "AssetDetail shows the price, market cap, 24h volume and amount held of one cryptocurrency.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id": {
							Type:        genai.TypeString,
							Description: "The cryptocurrency id, e.g. 'bitcoin'.",
						},
					},
					Required: []string{"id"},
				},
				Response: markdown,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				asset, ok := args["id"].(string)
				if !ok {
					return respond(id, "AssetDetail", "", fmt.Errorf("argument 'id' is not a string as expected but %T", args["id"]))
				}
				view := func(s cryptotracker.State) string { return renderer.Details(s, asset) }
				out, err := fetch(ctx, store, cryptotracker.RequestAssetDetail{ID: asset}, view)
				return respond(id, "AssetDetail", out, err)
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Portfolio",
				Description: "Portfolio lists the holdings of the user with their current value and the total value.",
				Response:    markdown,
			},
			Func: func(ctx context.Context, id string, _ map[string]any) *genai.FunctionResponse {
				// Valuing the portfolio requires fresh prices.
				out, err := fetch(ctx, store, cryptotracker.RequestAssetList{}, renderer.Portfolio)
				return respond(id, "Portfolio", out, err)
			},
		},
	}
}

// fetch dispatches a request and renders the state once it has been answered.
func fetch(ctx context.Context, store *cryptotracker.Store, a cryptotracker.Action, view func(cryptotracker.State) string) (string, error) {
	store.Dispatch(a)
	if err := store.Wait(ctx); err != nil {
		return "", err
	}
	s := store.State()
	if s.HasError() {
		return "", errors.New(s.Error)
	}
	return view(s), nil
}
